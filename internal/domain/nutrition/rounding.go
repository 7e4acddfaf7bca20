package nutrition

import "math"

// FDA label rounding rules from 21 CFR 101.9 and the FDA Food Labeling Guide
// Appendix H. These are a presentation layer over the exact pipeline values:
// the calculation services always expose unrounded numbers, and callers apply
// these rules only when rendering a label.

// roundHalfUp rounds value to the nearest increment, with halfway values
// rounding up. FDA guidance specifies round-half-up, not banker's rounding.
func roundHalfUp(value, increment float64) float64 {
	if increment == 0 {
		return value
	}
	return math.Floor(value/increment+0.5) * increment
}

// RoundCalories rounds calories per 21 CFR 101.9(c)(1):
// <5 kcal reports 0, up to 50 kcal rounds to the nearest 5, above that to
// the nearest 10.
func RoundCalories(value float64) float64 {
	switch {
	case value < 5:
		return 0
	case value <= 50:
		return roundHalfUp(value, 5)
	default:
		return roundHalfUp(value, 10)
	}
}

// RoundFat rounds fat values per 21 CFR 101.9(c)(2):
// <0.5g reports 0, under 5g rounds to the nearest 0.5g, otherwise nearest 1g.
func RoundFat(value float64) float64 {
	switch {
	case value < 0.5:
		return 0
	case value < 5:
		return roundHalfUp(value, 0.5)
	default:
		return roundHalfUp(value, 1)
	}
}

// RoundCholesterol rounds cholesterol per 21 CFR 101.9(c)(3). Values between
// 2 and 5 mg are declared "less than 5mg"; the returned marker value 2
// represents that declaration.
func RoundCholesterol(value float64) float64 {
	switch {
	case value < 2:
		return 0
	case value <= 5:
		return 2
	default:
		return roundHalfUp(value, 5)
	}
}

// RoundSodiumPotassium rounds sodium and potassium per 21 CFR 101.9(c)(4):
// <5mg reports 0, up to 140mg rounds to the nearest 5mg, above that to the
// nearest 10mg.
func RoundSodiumPotassium(value float64) float64 {
	switch {
	case value < 5:
		return 0
	case value <= 140:
		return roundHalfUp(value, 5)
	default:
		return roundHalfUp(value, 10)
	}
}

// RoundCarbProtein rounds carbohydrate, fiber, sugars, and protein per
// 21 CFR 101.9(c)(6-7). Values between 0.5 and 1 g are declared "less than
// 1g"; the returned marker value 0.5 represents that declaration.
func RoundCarbProtein(value float64) float64 {
	switch {
	case value < 0.5:
		return 0
	case value < 1:
		return 0.5
	default:
		return roundHalfUp(value, 1)
	}
}

// RoundServingSizeMetric rounds a serving size in grams or milliliters per
// 21 CFR 101.9(b)(5).
func RoundServingSizeMetric(value float64) float64 {
	switch {
	case value >= 5:
		return roundHalfUp(value, 1)
	case value >= 2:
		return roundHalfUp(value, 0.5)
	default:
		return roundHalfUp(value, 0.1)
	}
}

// RoundServingsPerContainer rounds servings per container per
// 21 CFR 101.9(b)(8). The second return value reports whether the label must
// carry an "about" prefix.
func RoundServingsPerContainer(value float64) (float64, bool) {
	switch {
	case value > 5:
		return roundHalfUp(value, 1), false
	case value >= 2:
		return roundHalfUp(value, 0.5), true
	default:
		return roundHalfUp(value, 1), false
	}
}

// RoundPercentDV rounds a percent Daily Value per 21 CFR 101.9(c)(8)(iii):
// macronutrients round to the nearest 1%, vitamins and minerals use
// 2/5/10% tiers.
func RoundPercentDV(n Nutrient, percent float64) int {
	if vitaminMineralNutrients[n] {
		switch {
		case percent <= 10:
			return int(roundHalfUp(percent, 2))
		case percent <= 50:
			return int(roundHalfUp(percent, 5))
		default:
			return int(roundHalfUp(percent, 10))
		}
	}
	return int(roundHalfUp(percent, 1))
}
