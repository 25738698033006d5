package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/redive/internal/model"
)

var (
	// ErrNotFound is wrapped by lookups when no record exists for a unit.
	ErrNotFound = errors.New("not found")
	// ErrNilChara is returned when unique equipment is attached to a nil chara.
	ErrNilChara = errors.New("nil chara")
	// ErrNilLookup is returned when no enhance lookup is given.
	ErrNilLookup = errors.New("nil enhance lookup")
)

// RawStats holds the 17 stat columns shared by unique equipment tables.
type RawStats struct {
	HP                 float64 `yaml:"hp"`
	Atk                float64 `yaml:"atk"`
	MagicStr           float64 `yaml:"magic_str"`
	Def                float64 `yaml:"def"`
	MagicDef           float64 `yaml:"magic_def"`
	PhysicalCritical   float64 `yaml:"physical_critical"`
	MagicCritical      float64 `yaml:"magic_critical"`
	WaveHPRecovery     float64 `yaml:"wave_hp_recovery"`
	WaveEnergyRecovery float64 `yaml:"wave_energy_recovery"`
	Dodge              float64 `yaml:"dodge"`
	PhysicalPenetrate  float64 `yaml:"physical_penetrate"`
	MagicPenetrate     float64 `yaml:"magic_penetrate"`
	LifeSteal          float64 `yaml:"life_steal"`
	HPRecoveryRate     float64 `yaml:"hp_recovery_rate"`
	EnergyRecoveryRate float64 `yaml:"energy_recovery_rate"`
	EnergyReduceRate   float64 `yaml:"energy_reduce_rate"`
	Accuracy           float64 `yaml:"accuracy"`
}

// Property converts the raw columns into a model.Property.
func (s *RawStats) Property() model.Property {
	return model.Property{
		HP:                 s.HP,
		Atk:                s.Atk,
		MagicStr:           s.MagicStr,
		Def:                s.Def,
		MagicDef:           s.MagicDef,
		PhysicalCritical:   s.PhysicalCritical,
		MagicCritical:      s.MagicCritical,
		WaveHPRecovery:     s.WaveHPRecovery,
		WaveEnergyRecovery: s.WaveEnergyRecovery,
		Dodge:              s.Dodge,
		PhysicalPenetrate:  s.PhysicalPenetrate,
		MagicPenetrate:     s.MagicPenetrate,
		LifeSteal:          s.LifeSteal,
		HPRecoveryRate:     s.HPRecoveryRate,
		EnergyRecoveryRate: s.EnergyRecoveryRate,
		EnergyReduceRate:   s.EnergyReduceRate,
		Accuracy:           s.Accuracy,
	}
}

// RawUniqueEquipmentData is one row of unique equipment base stats.
type RawUniqueEquipmentData struct {
	EquipmentID   int32  `yaml:"equipment_id"`
	EquipmentName string `yaml:"equipment_name"`
	RawStats      `yaml:",inline"`
}

// RawUniqueEquipmentEnhance is the per-level stat gain of a unit's unique equipment.
type RawUniqueEquipmentEnhance struct {
	UnitID      int32
	EquipmentID int32
	RawStats
}

// EnhanceLookup finds the enhance rates of a unit's unique equipment.
// Implementations wrap ErrNotFound when the unit has none.
type EnhanceLookup interface {
	UniqueEquipmentEnhance(ctx context.Context, unitID int32) (*RawUniqueEquipmentEnhance, error)
}

// SetCharaUniqueEquipment builds an Equipment from r and the unit's enhance rates
// and assigns it to chara.UniqueEquipment. On error chara is left unchanged.
func (r *RawUniqueEquipmentData) SetCharaUniqueEquipment(ctx context.Context, chara *model.Chara, lookup EnhanceLookup) error {
	if chara == nil {
		return ErrNilChara
	}
	if lookup == nil {
		return ErrNilLookup
	}

	enhance, err := lookup.UniqueEquipmentEnhance(ctx, chara.UnitID)
	if err != nil {
		return fmt.Errorf("looking up unique equipment enhance for unit %d: %w", chara.UnitID, err)
	}

	chara.UniqueEquipment = &model.Equipment{
		ID:              r.EquipmentID,
		Name:            r.EquipmentName,
		MaxEnhanceLevel: chara.MaxUniqueEquipmentLevel,
		Property:        r.Property(),
		EnhanceRate:     enhance.Property(),
	}
	return nil
}
