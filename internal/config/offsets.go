package config

import (
	"errors"
	"fmt"

	"dom-compiler/internal/entry"
)

// Offsets is the base of the absolute id range for every category that
// accepts relative ids.
type Offsets struct {
	Weapon            int `yaml:"weapon"`
	Armor             int `yaml:"armor"`
	Monster           int `yaml:"monster"`
	Spell             int `yaml:"spell"`
	Nation            int `yaml:"nation"`
	Site              int `yaml:"site"`
	EnchantmentNumber int `yaml:"enchantment_number"`
	EventCode         int `yaml:"event_code"`
}

// DefaultOffsets returns the lowest legal base for every category.
func DefaultOffsets() Offsets {
	return Offsets{
		Weapon:            1000,
		Armor:             300,
		Monster:           5000,
		Spell:             1300,
		Nation:            150,
		Site:              1700,
		EnchantmentNumber: 200,
		EventCode:         -300,
	}
}

// Base returns the configured base for c. ok is false for categories that
// have no id space of their own.
func (o Offsets) Base(c entry.Category) (base int, ok bool) {
	switch c {
	case entry.Weapon:
		return o.Weapon, true
	case entry.Armor:
		return o.Armor, true
	case entry.Monster:
		return o.Monster, true
	case entry.Spell:
		return o.Spell, true
	case entry.Nation:
		return o.Nation, true
	case entry.Site:
		return o.Site, true
	case entry.EnchantmentNumber:
		return o.EnchantmentNumber, true
	case entry.Event:
		return o.EventCode, true
	}
	return 0, false
}

type offsetRange struct {
	name     string
	value    int
	min, max int
}

func (o Offsets) ranges() []offsetRange {
	return []offsetRange{
		{KeyWeaponIndex, o.Weapon, 1000, 3999},
		{KeyArmorIndex, o.Armor, 300, 999},
		{KeyMonsterIndex, o.Monster, 5000, 8999},
		{KeySpellIndex, o.Spell, 1300, 3999},
		{KeyNationIndex, o.Nation, 150, 499},
		{KeySiteIndex, o.Site, 1700, 3999},
		{KeyEnchantmentIndex, o.EnchantmentNumber, 200, 9999},
		{KeyEventCodeIndex, o.EventCode, -5000, -300},
	}
}

// ErrOutOfRange is returned by Validate for an offset outside its legal range.
var ErrOutOfRange = errors.New("offset out of range")

// Validate checks every offset against the range the game accepts.
func (o Offsets) Validate() error {
	var errs []error
	for _, r := range o.ranges() {
		if r.value < r.min || r.value > r.max {
			errs = append(errs, fmt.Errorf("%w: %s=%d, want %d..%d", ErrOutOfRange, r.name, r.value, r.min, r.max))
		}
	}
	return errors.Join(errs...)
}
