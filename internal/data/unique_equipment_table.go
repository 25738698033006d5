package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Table is an in-memory registry of unique equipment keyed by unit ID.
// It is read-only after loading and safe for concurrent use.
type Table struct {
	equipment map[int32]*RawUniqueEquipmentData
	enhance   map[int32]*RawUniqueEquipmentEnhance
	maxLevel  int32
}

type tableFile struct {
	MaxUniqueEquipmentLevel int32        `yaml:"max_unique_equipment_level"`
	UniqueEquipment         []tableEntry `yaml:"unique_equipment"`
}

type tableEntry struct {
	UnitID                 int32 `yaml:"unit_id"`
	RawUniqueEquipmentData `yaml:",inline"`
	Enhance                *RawStats `yaml:"enhance"`
}

// LoadTable reads a YAML master data file.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading unique equipment data %s: %w", path, err)
	}
	t, err := ParseTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing unique equipment data %s: %w", path, err)
	}
	slog.Info("loaded unique equipment", "path", path, "count", len(t.equipment), "enhance", len(t.enhance))
	return t, nil
}

// ParseTable builds a Table from YAML bytes.
func ParseTable(raw []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if f.MaxUniqueEquipmentLevel < 0 {
		return nil, fmt.Errorf("negative max_unique_equipment_level %d", f.MaxUniqueEquipmentLevel)
	}

	t := &Table{
		equipment: make(map[int32]*RawUniqueEquipmentData, len(f.UniqueEquipment)),
		enhance:   make(map[int32]*RawUniqueEquipmentEnhance, len(f.UniqueEquipment)),
		maxLevel:  f.MaxUniqueEquipmentLevel,
	}

	var errs []error
	for i := range f.UniqueEquipment {
		e := &f.UniqueEquipment[i]
		if err := e.validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if _, dup := t.equipment[e.UnitID]; dup {
			errs = append(errs, fmt.Errorf("entry %d: duplicate unit_id %d", i, e.UnitID))
			continue
		}

		rec := e.RawUniqueEquipmentData
		t.equipment[e.UnitID] = &rec
		if e.Enhance != nil {
			t.enhance[e.UnitID] = &RawUniqueEquipmentEnhance{
				UnitID:      e.UnitID,
				EquipmentID: e.EquipmentID,
				RawStats:    *e.Enhance,
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

func (e *tableEntry) validate() error {
	switch {
	case e.UnitID <= 0:
		return fmt.Errorf("invalid unit_id %d", e.UnitID)
	case e.EquipmentID <= 0:
		return fmt.Errorf("unit %d: invalid equipment_id %d", e.UnitID, e.EquipmentID)
	case e.EquipmentName == "":
		return fmt.Errorf("unit %d: empty equipment_name", e.UnitID)
	}
	return nil
}

// UniqueEquipment returns the unit's unique equipment base record.
func (t *Table) UniqueEquipment(_ context.Context, unitID int32) (*RawUniqueEquipmentData, error) {
	r, ok := t.equipment[unitID]
	if !ok {
		return nil, fmt.Errorf("unique equipment for unit %d: %w", unitID, ErrNotFound)
	}
	return r, nil
}

// UniqueEquipmentEnhance returns the unit's unique equipment enhance rates.
func (t *Table) UniqueEquipmentEnhance(_ context.Context, unitID int32) (*RawUniqueEquipmentEnhance, error) {
	r, ok := t.enhance[unitID]
	if !ok {
		return nil, fmt.Errorf("unique equipment enhance for unit %d: %w", unitID, ErrNotFound)
	}
	return r, nil
}

// MaxUniqueEquipmentLevel returns the highest unique equipment level in the data.
func (t *Table) MaxUniqueEquipmentLevel(context.Context) (int32, error) {
	return t.maxLevel, nil
}

// UnitIDs returns all unit IDs with unique equipment, sorted ascending.
func (t *Table) UnitIDs() []int32 {
	ids := make([]int32, 0, len(t.equipment))
	for id := range t.equipment {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of units with unique equipment.
func (t *Table) Len() int {
	return len(t.equipment)
}
