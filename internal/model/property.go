package model

import "math"

// Property is the set of combat stats carried by equipment and units.
// Values are kept as float64 because enhance rates are fractional.
type Property struct {
	HP                 float64
	Atk                float64
	MagicStr           float64
	Def                float64
	MagicDef           float64
	PhysicalCritical   float64
	MagicCritical      float64
	WaveHPRecovery     float64
	WaveEnergyRecovery float64
	Dodge              float64
	PhysicalPenetrate  float64
	MagicPenetrate     float64
	LifeSteal          float64
	HPRecoveryRate     float64
	EnergyRecoveryRate float64
	EnergyReduceRate   float64
	Accuracy           float64
}

// Plus returns the field-wise sum of p and o.
func (p Property) Plus(o Property) Property {
	return p.combine(o, func(a, b float64) float64 { return a + b })
}

// Scale returns p with every stat multiplied by f.
func (p Property) Scale(f float64) Property {
	return p.apply(func(v float64) float64 { return v * f })
}

// Ceil rounds every stat up, the way stats are shown in game.
func (p Property) Ceil() Property {
	return p.apply(math.Ceil)
}

// IsZero reports whether all stats are zero.
func (p Property) IsZero() bool {
	return p == Property{}
}

func (p Property) apply(fn func(float64) float64) Property {
	return p.combine(Property{}, func(a, _ float64) float64 { return fn(a) })
}

func (p Property) combine(o Property, fn func(a, b float64) float64) Property {
	return Property{
		HP:                 fn(p.HP, o.HP),
		Atk:                fn(p.Atk, o.Atk),
		MagicStr:           fn(p.MagicStr, o.MagicStr),
		Def:                fn(p.Def, o.Def),
		MagicDef:           fn(p.MagicDef, o.MagicDef),
		PhysicalCritical:   fn(p.PhysicalCritical, o.PhysicalCritical),
		MagicCritical:      fn(p.MagicCritical, o.MagicCritical),
		WaveHPRecovery:     fn(p.WaveHPRecovery, o.WaveHPRecovery),
		WaveEnergyRecovery: fn(p.WaveEnergyRecovery, o.WaveEnergyRecovery),
		Dodge:              fn(p.Dodge, o.Dodge),
		PhysicalPenetrate:  fn(p.PhysicalPenetrate, o.PhysicalPenetrate),
		MagicPenetrate:     fn(p.MagicPenetrate, o.MagicPenetrate),
		LifeSteal:          fn(p.LifeSteal, o.LifeSteal),
		HPRecoveryRate:     fn(p.HPRecoveryRate, o.HPRecoveryRate),
		EnergyRecoveryRate: fn(p.EnergyRecoveryRate, o.EnergyRecoveryRate),
		EnergyReduceRate:   fn(p.EnergyReduceRate, o.EnergyReduceRate),
		Accuracy:           fn(p.Accuracy, o.Accuracy),
	}
}
