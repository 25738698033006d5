package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/redive/internal/data"
)

// statColumns — порядок колонок совпадает с statDest/statArgs.
var statColumns = []string{
	"hp", "atk", "magic_str", "def", "magic_def",
	"physical_critical", "magic_critical", "wave_hp_recovery", "wave_energy_recovery",
	"dodge", "physical_penetrate", "magic_penetrate", "life_steal",
	"hp_recovery_rate", "energy_recovery_rate", "energy_reduce_rate", "accuracy",
}

var (
	statList = strings.Join(statColumns, ", ")

	selectUniqueEquipment = `
		SELECT d.equipment_id, d.equipment_name, ` + prefixed("d", statColumns) + `
		FROM unit_unique_equip u
		JOIN unique_equipment_data d ON d.equipment_id = u.equip_id
		WHERE u.unit_id = $1`

	selectUniqueEquipmentEnhance = `
		SELECT u.unit_id, r.equipment_id, ` + prefixed("r", statColumns) + `
		FROM unit_unique_equip u
		JOIN unique_equipment_enhance_rate r ON r.equipment_id = u.equip_id
		WHERE u.unit_id = $1`

	upsertUniqueEquipment = `
		INSERT INTO unique_equipment_data (equipment_id, equipment_name, ` + statList + `)
		VALUES (` + placeholders(1, len(statColumns)+2) + `)
		ON CONFLICT (equipment_id) DO UPDATE SET equipment_name = EXCLUDED.equipment_name, ` + excluded(statColumns)

	upsertEnhanceRate = `
		INSERT INTO unique_equipment_enhance_rate (equipment_id, ` + statList + `)
		VALUES (` + placeholders(1, len(statColumns)+1) + `)
		ON CONFLICT (equipment_id) DO UPDATE SET ` + excluded(statColumns)
)

func prefixed(alias string, cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return strings.Join(out, ", ")
}

func placeholders(from, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(out, ", ")
}

func excluded(cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c + " = EXCLUDED." + c
	}
	return strings.Join(out, ", ")
}

func statDest(s *data.RawStats) []any {
	return []any{
		&s.HP, &s.Atk, &s.MagicStr, &s.Def, &s.MagicDef,
		&s.PhysicalCritical, &s.MagicCritical, &s.WaveHPRecovery, &s.WaveEnergyRecovery,
		&s.Dodge, &s.PhysicalPenetrate, &s.MagicPenetrate, &s.LifeSteal,
		&s.HPRecoveryRate, &s.EnergyRecoveryRate, &s.EnergyReduceRate, &s.Accuracy,
	}
}

func statArgs(s *data.RawStats) []any {
	return []any{
		s.HP, s.Atk, s.MagicStr, s.Def, s.MagicDef,
		s.PhysicalCritical, s.MagicCritical, s.WaveHPRecovery, s.WaveEnergyRecovery,
		s.Dodge, s.PhysicalPenetrate, s.MagicPenetrate, s.LifeSteal,
		s.HPRecoveryRate, s.EnergyRecoveryRate, s.EnergyReduceRate, s.Accuracy,
	}
}

// UniqueEquipmentRepository reads and writes unique equipment master data.
type UniqueEquipmentRepository struct {
	db *pgxpool.Pool
}

// NewUniqueEquipmentRepository создаёт новый UniqueEquipmentRepository.
func NewUniqueEquipmentRepository(db *pgxpool.Pool) *UniqueEquipmentRepository {
	return &UniqueEquipmentRepository{db: db}
}

// UniqueEquipment возвращает базовые статы уникальной экипировки юнита.
// Wraps data.ErrNotFound if the unit has none.
func (r *UniqueEquipmentRepository) UniqueEquipment(ctx context.Context, unitID int32) (*data.RawUniqueEquipmentData, error) {
	var raw data.RawUniqueEquipmentData
	dest := append([]any{&raw.EquipmentID, &raw.EquipmentName}, statDest(&raw.RawStats)...)

	if err := r.db.QueryRow(ctx, selectUniqueEquipment, unitID).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("unique equipment for unit %d: %w", unitID, data.ErrNotFound)
		}
		return nil, fmt.Errorf("querying unique equipment for unit %d: %w", unitID, err)
	}
	return &raw, nil
}

// UniqueEquipmentEnhance возвращает прирост статов за уровень для юнита.
// Wraps data.ErrNotFound if the unit has no enhance rates.
func (r *UniqueEquipmentRepository) UniqueEquipmentEnhance(ctx context.Context, unitID int32) (*data.RawUniqueEquipmentEnhance, error) {
	var raw data.RawUniqueEquipmentEnhance
	dest := append([]any{&raw.UnitID, &raw.EquipmentID}, statDest(&raw.RawStats)...)

	if err := r.db.QueryRow(ctx, selectUniqueEquipmentEnhance, unitID).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("unique equipment enhance for unit %d: %w", unitID, data.ErrNotFound)
		}
		return nil, fmt.Errorf("querying unique equipment enhance for unit %d: %w", unitID, err)
	}
	return &raw, nil
}

// MaxUniqueEquipmentLevel возвращает максимальный уровень уникальной экипировки (0 если данных нет).
func (r *UniqueEquipmentRepository) MaxUniqueEquipmentLevel(ctx context.Context) (int32, error) {
	var level int32
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(enhance_level), 0) FROM unique_equipment_enhance_data`,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("querying max unique equipment level: %w", err)
	}
	return level, nil
}

// UnitIDs returns all units that have unique equipment, ascending.
func (r *UniqueEquipmentRepository) UnitIDs(ctx context.Context) ([]int32, error) {
	rows, err := r.db.Query(ctx, `SELECT unit_id FROM unit_unique_equip ORDER BY unit_id`)
	if err != nil {
		return nil, fmt.Errorf("querying unique equipment units: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int32])
	if err != nil {
		return nil, fmt.Errorf("collecting unique equipment units: %w", err)
	}
	return ids, nil
}

// SaveUniqueEquipment сохраняет экипировку юнита и (опционально) её enhance rates в одной транзакции.
func (r *UniqueEquipmentRepository) SaveUniqueEquipment(ctx context.Context, unitID int32, raw *data.RawUniqueEquipmentData, enhance *data.RawStats) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	args := append([]any{raw.EquipmentID, raw.EquipmentName}, statArgs(&raw.RawStats)...)
	if _, err := tx.Exec(ctx, upsertUniqueEquipment, args...); err != nil {
		return fmt.Errorf("saving unique equipment %d: %w", raw.EquipmentID, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO unit_unique_equip (unit_id, equip_slot, equip_id) VALUES ($1, 1, $2)
		 ON CONFLICT (unit_id) DO UPDATE SET equip_id = EXCLUDED.equip_id`,
		unitID, raw.EquipmentID,
	)
	if err != nil {
		return fmt.Errorf("linking unit %d to unique equipment %d: %w", unitID, raw.EquipmentID, err)
	}

	if enhance != nil {
		args := append([]any{raw.EquipmentID}, statArgs(enhance)...)
		if _, err := tx.Exec(ctx, upsertEnhanceRate, args...); err != nil {
			return fmt.Errorf("saving enhance rate for unique equipment %d: %w", raw.EquipmentID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing unique equipment for unit %d: %w", unitID, err)
	}
	return nil
}

// SaveEnhanceLevels ensures enhance levels 1..maxLevel exist.
func (r *UniqueEquipmentRepository) SaveEnhanceLevels(ctx context.Context, maxLevel int32) error {
	if maxLevel <= 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO unique_equipment_enhance_data (enhance_level)
		 SELECT generate_series(1, $1::int)
		 ON CONFLICT (enhance_level) DO NOTHING`,
		maxLevel,
	)
	if err != nil {
		return fmt.Errorf("saving enhance levels up to %d: %w", maxLevel, err)
	}
	return nil
}

// Import copies every unit from a YAML master table into the database.
func (r *UniqueEquipmentRepository) Import(ctx context.Context, t *data.Table) (int, error) {
	maxLevel, err := t.MaxUniqueEquipmentLevel(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.SaveEnhanceLevels(ctx, maxLevel); err != nil {
		return 0, err
	}

	n := 0
	for _, unitID := range t.UnitIDs() {
		raw, err := t.UniqueEquipment(ctx, unitID)
		if err != nil {
			return n, err
		}

		var enhance *data.RawStats
		e, err := t.UniqueEquipmentEnhance(ctx, unitID)
		switch {
		case err == nil:
			enhance = &e.RawStats
		case !errors.Is(err, data.ErrNotFound):
			return n, err
		}

		if err := r.SaveUniqueEquipment(ctx, unitID, raw, enhance); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
