package category

import "fmt"

// VehicleCategory is the closed set of vehicle classes.
type VehicleCategory int

const (
	Cargo VehicleCategory = iota
	Passenger
	Special
)

// All lists every category in display order.
var All = []VehicleCategory{Cargo, Passenger, Special}

func (c VehicleCategory) String() string {
	switch c {
	case Cargo:
		return "cargo"
	case Passenger:
		return "passenger"
	case Special:
		return "special"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Parse maps a name as produced by String back to a category.
func Parse(s string) (VehicleCategory, error) {
	for _, c := range All {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown vehicle category %q", s)
}

// Descriptor is what a category resolves to.
type Descriptor struct {
	// ID matches models.Vehicle.CategoryID.
	ID int
	// Key is the localization key of the label.
	Key string
	// Glyph marks the category on the map.
	Glyph rune
}

// Resolver looks up the descriptor of a category.
type Resolver func(VehicleCategory) (Descriptor, bool)

var categoryMap = map[VehicleCategory]Descriptor{
	Cargo:     {ID: 1, Key: "CATEGORY_CARGO", Glyph: 'C'},
	Passenger: {ID: 2, Key: "CATEGORY_PASSENGER", Glyph: 'P'},
	Special:   {ID: 3, Key: "CATEGORY_SPECIAL", Glyph: 'S'},
}

// Lookup resolves c through the process-wide category map.
func Lookup(c VehicleCategory) (Descriptor, bool) {
	d, ok := categoryMap[c]
	return d, ok
}

// ByID finds the descriptor whose ID is id.
func ByID(id int) (VehicleCategory, Descriptor, bool) {
	for _, c := range All {
		if d := categoryMap[c]; d.ID == id {
			return c, d, true
		}
	}
	return 0, Descriptor{}, false
}
