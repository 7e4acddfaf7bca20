package recipe

import "strings"

// Unit configuration for measurement resolution. The recognized unit lists
// and alias map are configuration data, kept in one structure rather than
// scattered literals.

// UnitClass partitions recognized units into weight, volume, and count.
type UnitClass string

const (
	UnitClassWeight UnitClass = "weight"
	UnitClassVolume UnitClass = "volume"
	UnitClassCount  UnitClass = "count"
)

// UnitTable enumerates the recognized measurement units.
type UnitTable struct {
	// GramsPerUnit maps weight units to their fixed linear factor to grams.
	GramsPerUnit map[string]float64
	// MlPerUnit maps volume units to milliliters.
	MlPerUnit map[string]float64
	// CountUnits lists units that denote discrete items.
	CountUnits []string
	// Aliases maps spelled-out or abbreviated forms to canonical units.
	Aliases map[string]string
}

// DefaultUnits is the process-wide unit configuration.
var DefaultUnits = UnitTable{
	GramsPerUnit: map[string]float64{
		"g":  1,
		"kg": 1000,
		"oz": 28.35,
		"lb": 453.6,
	},
	MlPerUnit: map[string]float64{
		"ml":    1,
		"l":     1000,
		"tsp":   4.929,
		"tbsp":  14.787,
		"cup":   236.588,
		"fl_oz": 29.574,
	},
	CountUnits: []string{
		"whole", "large", "medium", "small",
		"piece", "slice", "clove", "stick", "packet",
		"pinch", "dash",
	},
	Aliases: map[string]string{
		"cups": "cup", "c": "cup", "c.": "cup",
		"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsp.": "tbsp",
		"tbs": "tbsp", "tbs.": "tbsp", "tb": "tbsp",
		"teaspoon": "tsp", "teaspoons": "tsp", "tsp.": "tsp",
		"t": "tsp", "t.": "tsp",
		"fluid ounce": "fl_oz", "fluid ounces": "fl_oz",
		"fl oz": "fl_oz", "fl. oz.": "fl_oz", "fl oz.": "fl_oz",
		"gram": "g", "grams": "g",
		"kilogram": "kg", "kilograms": "kg",
		"ounce": "oz", "ounces": "oz", "oz.": "oz",
		"pound": "lb", "pounds": "lb", "lbs": "lb", "lb.": "lb",
		"milliliter": "ml", "milliliters": "ml",
		"liter": "l", "liters": "l",
		"each": "whole", "pieces": "piece", "slices": "slice",
		"cloves": "clove", "sticks": "stick", "packets": "packet",
	},
}

// Normalize maps a free-form unit string to its canonical form. Unknown
// units pass through unchanged so the estimate tier can still name them.
func (t UnitTable) Normalize(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := t.Aliases[u]; ok {
		return canonical
	}
	return u
}

// Class returns the class of a canonical unit and whether it is recognized.
func (t UnitTable) Class(unit string) (UnitClass, bool) {
	if _, ok := t.GramsPerUnit[unit]; ok {
		return UnitClassWeight, true
	}
	if _, ok := t.MlPerUnit[unit]; ok {
		return UnitClassVolume, true
	}
	for _, c := range t.CountUnits {
		if c == unit {
			return UnitClassCount, true
		}
	}
	return "", false
}
