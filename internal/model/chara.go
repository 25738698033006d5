package model

// Chara is a playable unit together with its equipment slots.
type Chara struct {
	UnitID                  int32
	UnitName                string
	MaxUniqueEquipmentLevel int32

	// UniqueEquipment is nil until unique equipment data is attached.
	UniqueEquipment *Equipment
}

// NewChara creates a Chara without equipment.
func NewChara(unitID int32, name string, maxUniqueEquipmentLevel int32) *Chara {
	return &Chara{
		UnitID:                  unitID,
		UnitName:                name,
		MaxUniqueEquipmentLevel: maxUniqueEquipmentLevel,
	}
}

// HasUniqueEquipment reports whether unique equipment is attached.
func (c *Chara) HasUniqueEquipment() bool {
	return c.UniqueEquipment != nil
}
