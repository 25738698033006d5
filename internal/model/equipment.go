package model

import (
	"errors"
	"fmt"
)

// ErrInvalidEnhanceLevel is returned when an enhance level is outside [1, MaxEnhanceLevel].
var ErrInvalidEnhanceLevel = errors.New("invalid enhance level")

// Equipment is a piece of gear attached to a unit.
// Property holds the level 1 stats, EnhanceRate the gain per level above 1.
type Equipment struct {
	ID              int32
	Name            string
	MaxEnhanceLevel int32
	Property        Property
	EnhanceRate     Property
}

// EnhancedProperty returns the stats at the given enhance level.
func (e *Equipment) EnhancedProperty(level int32) (Property, error) {
	if level < 1 || level > e.MaxEnhanceLevel {
		return Property{}, fmt.Errorf("equipment %d level %d (max %d): %w",
			e.ID, level, e.MaxEnhanceLevel, ErrInvalidEnhanceLevel)
	}
	return e.Property.Plus(e.EnhanceRate.Scale(float64(level - 1))), nil
}

// MaxProperty returns ceiled stats at MaxEnhanceLevel.
// Equipment without a valid max level yields its base stats.
func (e *Equipment) MaxProperty() Property {
	p, err := e.EnhancedProperty(e.MaxEnhanceLevel)
	if err != nil {
		return e.Property.Ceil()
	}
	return p.Ceil()
}
