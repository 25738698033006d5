package db

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/redive/internal/data"
	"github.com/udisondev/redive/internal/model"
)

func TestStatColumnsMatchDestinations(t *testing.T) {
	var s data.RawStats
	assert.Len(t, statDest(&s), len(statColumns))
	assert.Len(t, statArgs(&s), len(statColumns))
	assert.Equal(t, "$3, $4", placeholders(3, 2))
	assert.True(t, strings.HasPrefix(excluded(statColumns), "hp = EXCLUDED.hp, atk = EXCLUDED.atk"))
}

func TestUniqueEquipmentRepository_SaveAndLoad(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUniqueEquipmentRepository(pool)

	raw := &data.RawUniqueEquipmentData{
		EquipmentID:   101,
		EquipmentName: "Memory Gem",
		RawStats:      data.RawStats{HP: 100, Accuracy: 7.5},
	}
	enhance := &data.RawStats{HP: 12, EnergyReduceRate: 0.25}

	require.NoError(t, repo.SaveUniqueEquipment(ctx, 1001, raw, enhance))
	require.NoError(t, repo.SaveEnhanceLevels(ctx, 5))

	got, err := repo.UniqueEquipment(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	gotEnhance, err := repo.UniqueEquipmentEnhance(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, int32(1001), gotEnhance.UnitID)
	assert.Equal(t, int32(101), gotEnhance.EquipmentID)
	assert.Equal(t, *enhance, gotEnhance.RawStats)

	maxLevel, err := repo.MaxUniqueEquipmentLevel(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(5), maxLevel)

	chara := model.NewChara(1001, "Test", maxLevel)
	require.NoError(t, got.SetCharaUniqueEquipment(ctx, chara, repo))
	assert.Equal(t, &model.Equipment{
		ID:              101,
		Name:            "Memory Gem",
		MaxEnhanceLevel: 5,
		Property:        model.Property{HP: 100, Accuracy: 7.5},
		EnhanceRate:     model.Property{HP: 12, EnergyReduceRate: 0.25},
	}, chara.UniqueEquipment)
}

func TestUniqueEquipmentRepository_Upsert(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUniqueEquipmentRepository(pool)

	raw := &data.RawUniqueEquipmentData{EquipmentID: 1, EquipmentName: "old"}
	require.NoError(t, repo.SaveUniqueEquipment(ctx, 10, raw, nil))

	raw.EquipmentName = "new"
	raw.Atk = 3
	require.NoError(t, repo.SaveUniqueEquipment(ctx, 10, raw, nil))

	got, err := repo.UniqueEquipment(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "new", got.EquipmentName)
	assert.Equal(t, 3.0, got.Atk)
}

func TestUniqueEquipmentRepository_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUniqueEquipmentRepository(pool)

	_, err := repo.UniqueEquipment(ctx, 404)
	assert.ErrorIs(t, err, data.ErrNotFound)

	// equipment without enhance rate row
	raw := &data.RawUniqueEquipmentData{EquipmentID: 2, EquipmentName: "bare"}
	require.NoError(t, repo.SaveUniqueEquipment(ctx, 20, raw, nil))
	_, err = repo.UniqueEquipmentEnhance(ctx, 20)
	assert.ErrorIs(t, err, data.ErrNotFound)

	maxLevel, err := repo.MaxUniqueEquipmentLevel(ctx)
	require.NoError(t, err)
	assert.Zero(t, maxLevel)
}

func TestUniqueEquipmentRepository_Import(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUniqueEquipmentRepository(pool)

	table, err := data.LoadTable("../data/testdata/unique_equipment.yaml")
	require.NoError(t, err)

	n, err := repo.Import(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, table.Len(), n)

	ids, err := repo.UnitIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.UnitIDs(), ids)

	maxLevel, err := repo.MaxUniqueEquipmentLevel(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(5), maxLevel)

	_, err = repo.UniqueEquipmentEnhance(ctx, 100301)
	assert.ErrorIs(t, err, data.ErrNotFound)
}
