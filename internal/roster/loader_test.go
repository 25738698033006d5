package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/redive/internal/data"
	"github.com/udisondev/redive/internal/model"
)

const testTable = `
max_unique_equipment_level: 5
unique_equipment:
  - unit_id: 100101
    equipment_id: 130011
    equipment_name: Memory Gem
    hp: 100
    enhance:
      hp: 10
  - unit_id: 100201
    equipment_id: 130021
    equipment_name: Ancient Tome
    magic_str: 45
`

var errSimulated = errors.New("simulated error for testing")

type failingSource struct {
	*data.Table
	failUnit int32
}

func (f failingSource) UniqueEquipment(ctx context.Context, unitID int32) (*data.RawUniqueEquipmentData, error) {
	if unitID == f.failUnit {
		return nil, errSimulated
	}
	return f.Table.UniqueEquipment(ctx, unitID)
}

func newTestTable(t *testing.T) *data.Table {
	t.Helper()
	table, err := data.ParseTable([]byte(testTable))
	require.NoError(t, err)
	return table
}

func TestLoader_Attach(t *testing.T) {
	ctx := context.Background()
	table := newTestTable(t)

	withEquip := model.NewChara(100101, "Hiyori", 5)
	noEnhance := model.NewChara(100201, "Yui", 5)
	noEquip := model.NewChara(100301, "Rei", 5)

	n, err := NewLoader(table, 2).Attach(ctx, []*model.Chara{withEquip, nil, noEnhance, noEquip})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.True(t, withEquip.HasUniqueEquipment())
	assert.Equal(t, int32(130011), withEquip.UniqueEquipment.ID)
	assert.Equal(t, "Memory Gem", withEquip.UniqueEquipment.Name)
	assert.Equal(t, int32(5), withEquip.UniqueEquipment.MaxEnhanceLevel)
	assert.Equal(t, model.Property{HP: 140}, withEquip.UniqueEquipment.MaxProperty())

	assert.False(t, noEnhance.HasUniqueEquipment())
	assert.False(t, noEquip.HasUniqueEquipment())
}

func TestLoader_Attach_Error(t *testing.T) {
	ctx := context.Background()
	src := failingSource{Table: newTestTable(t), failUnit: 100201}

	charas := []*model.Chara{
		model.NewChara(100101, "Hiyori", 5),
		model.NewChara(100201, "Yui", 5),
	}

	_, err := NewLoader(src, 1).Attach(ctx, charas)
	require.ErrorIs(t, err, errSimulated)
}

func TestLoader_Attach_Empty(t *testing.T) {
	n, err := NewLoader(newTestTable(t), 0).Attach(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
