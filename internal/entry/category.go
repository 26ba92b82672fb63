package entry

// Category is the kind of a record. The declaration order is the order in
// which categories are written to the output file.
type Category int

const (
	Meta Category = iota
	Sound
	Weapon
	Armor
	Monster
	Name
	Blessing
	Site
	Nation
	Spell
	Item
	General
	Poptype
	Mercenary
	Event
	Ai

	// EnchantmentNumber is only a resolution target. No record is ever
	// classified into it and it is never written.
	EnchantmentNumber
)

var categoryNames = [...]string{
	Meta:              "Meta",
	Sound:             "Sound",
	Weapon:            "Weapon",
	Armor:             "Armor",
	Monster:           "Monster",
	Name:              "Name",
	Blessing:          "Blessing",
	Site:              "Site",
	Nation:            "Nation",
	Spell:             "Spell",
	Item:              "Item",
	General:           "General",
	Poptype:           "Poptype",
	Mercenary:         "Mercenary",
	Event:             "Event",
	Ai:                "Ai",
	EnchantmentNumber: "EnchantmentNumber",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categories returns every bucket category in output order.
func Categories() []Category {
	out := make([]Category, 0, int(Ai)+1)
	for c := Meta; c <= Ai; c++ {
		out = append(out, c)
	}
	return out
}

// Sortable reports whether entries of the category are reordered by id
// before being written.
func (c Category) Sortable() bool {
	switch c {
	case Monster, Armor, Weapon, Nation, Mercenary, Spell, Poptype, Sound, Ai:
		return true
	}
	return false
}

// Continued reports whether a record of this category spans lines up to an
// #end terminator. Meta and General records are a single line.
func (c Category) Continued() bool {
	return c != Meta && c != General
}
