package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/udisondev/redive/internal/model"
)

type namedStat struct {
	name  string
	value float64
}

// stats lists non-zero stats in display order.
func stats(p model.Property) []namedStat {
	all := []namedStat{
		{"hp", p.HP},
		{"atk", p.Atk},
		{"magic_str", p.MagicStr},
		{"def", p.Def},
		{"magic_def", p.MagicDef},
		{"physical_critical", p.PhysicalCritical},
		{"magic_critical", p.MagicCritical},
		{"wave_hp_recovery", p.WaveHPRecovery},
		{"wave_energy_recovery", p.WaveEnergyRecovery},
		{"dodge", p.Dodge},
		{"physical_penetrate", p.PhysicalPenetrate},
		{"magic_penetrate", p.MagicPenetrate},
		{"life_steal", p.LifeSteal},
		{"hp_recovery_rate", p.HPRecoveryRate},
		{"energy_recovery_rate", p.EnergyRecoveryRate},
		{"energy_reduce_rate", p.EnergyReduceRate},
		{"accuracy", p.Accuracy},
	}
	out := all[:0]
	for _, s := range all {
		if s.value != 0 {
			out = append(out, s)
		}
	}
	return out
}

func formatProperty(p model.Property) string {
	parts := make([]string, 0, 17)
	for _, s := range stats(p) {
		parts = append(parts, s.name+"="+strconv.FormatFloat(s.value, 'f', -1, 64))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// printCharas writes one line per chara. level 0 means the chara's max level.
func printCharas(w io.Writer, charas []*model.Chara, level int32) error {
	for _, c := range charas {
		if !c.HasUniqueEquipment() {
			if _, err := fmt.Fprintf(w, "%d\t(no unique equipment)\n", c.UnitID); err != nil {
				return err
			}
			continue
		}

		e := c.UniqueEquipment
		lv, p, err := displayProperty(e, level)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%d\t%d\t%s\tlv%d\t%s\n",
			c.UnitID, e.ID, e.Name, lv, formatProperty(p)); err != nil {
			return err
		}
	}
	return nil
}

// displayProperty returns the shown level and ceiled stats.
// level 0 uses the max level; data without a level cap shows base stats at lv1.
func displayProperty(e *model.Equipment, level int32) (int32, model.Property, error) {
	if level == 0 {
		return max(e.MaxEnhanceLevel, 1), e.MaxProperty(), nil
	}
	p, err := e.EnhancedProperty(level)
	if err != nil {
		return 0, model.Property{}, err
	}
	return level, p.Ceil(), nil
}
