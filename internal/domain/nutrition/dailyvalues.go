package nutrition

// DailyValues holds the FDA Daily Reference Values for a 2,000 calorie diet
// (21 CFR 101.9, 2020 label update). The table is fixed at process start and
// never mutated at runtime.
//
// Calories, trans fat, and total sugars have no FDA daily value and are
// intentionally absent: they must never produce a %DV.
var DailyValues = map[Nutrient]float64{
	TotalFatG:          78,   // grams
	SaturatedFatG:      20,   // grams
	CholesterolMg:      300,  // milligrams
	SodiumMg:           2300, // milligrams
	TotalCarbohydrateG: 275,  // grams
	DietaryFiberG:      28,   // grams
	AddedSugarsG:       50,   // grams
	ProteinG:           50,   // grams
	VitaminDMcg:        20,   // micrograms
	CalciumMg:          1300, // milligrams
	IronMg:             18,   // milligrams
	PotassiumMg:        4700, // milligrams
}

// vitaminMineralNutrients use the tiered %DV rounding of
// 21 CFR 101.9(c)(8)(iii) rather than nearest-1% rounding.
var vitaminMineralNutrients = map[Nutrient]bool{
	VitaminDMcg: true,
	CalciumMg:   true,
	IronMg:      true,
	PotassiumMg: true,
}

// DailyValue returns the reference daily amount for a nutrient and whether
// one is defined.
func DailyValue(n Nutrient) (float64, bool) {
	dv, ok := DailyValues[n]
	return dv, ok
}

// PercentDV returns the unrounded percent Daily Value for an amount of a
// nutrient, or false if the nutrient has no daily value.
func PercentDV(n Nutrient, amount float64) (float64, bool) {
	dv, ok := DailyValues[n]
	if !ok {
		return 0, false
	}
	return amount / dv * 100, true
}
