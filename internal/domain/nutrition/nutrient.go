// Package nutrition contains the core domain model for nutrient data.
// All profiles are expressed per 100 grams of the substance they describe.
package nutrition

// Nutrient identifies one of the tracked label nutrients.
type Nutrient string

// The fifteen nutrients tracked on a standard FDA nutrition label.
const (
	Calories           Nutrient = "calories"
	TotalFatG          Nutrient = "total_fat_g"
	SaturatedFatG      Nutrient = "saturated_fat_g"
	TransFatG          Nutrient = "trans_fat_g"
	CholesterolMg      Nutrient = "cholesterol_mg"
	SodiumMg           Nutrient = "sodium_mg"
	TotalCarbohydrateG Nutrient = "total_carbohydrate_g"
	DietaryFiberG      Nutrient = "dietary_fiber_g"
	TotalSugarsG       Nutrient = "total_sugars_g"
	AddedSugarsG       Nutrient = "added_sugars_g"
	ProteinG           Nutrient = "protein_g"
	VitaminDMcg        Nutrient = "vitamin_d_mcg"
	CalciumMg          Nutrient = "calcium_mg"
	IronMg             Nutrient = "iron_mg"
	PotassiumMg        Nutrient = "potassium_mg"
)

// TrackedNutrients lists every recognized nutrient in label order.
var TrackedNutrients = []Nutrient{
	Calories,
	TotalFatG,
	SaturatedFatG,
	TransFatG,
	CholesterolMg,
	SodiumMg,
	TotalCarbohydrateG,
	DietaryFiberG,
	TotalSugarsG,
	AddedSugarsG,
	ProteinG,
	VitaminDMcg,
	CalciumMg,
	IronMg,
	PotassiumMg,
}

var trackedSet = func() map[Nutrient]bool {
	m := make(map[Nutrient]bool, len(TrackedNutrients))
	for _, n := range TrackedNutrients {
		m[n] = true
	}
	return m
}()

// IsTracked reports whether n is one of the recognized label nutrients.
func IsTracked(n Nutrient) bool {
	return trackedSet[n]
}

// Unit returns the measurement unit for a nutrient's amount.
func (n Nutrient) Unit() string {
	switch n {
	case Calories:
		return "kcal"
	case CholesterolMg, SodiumMg, CalciumMg, IronMg, PotassiumMg:
		return "mg"
	case VitaminDMcg:
		return "mcg"
	default:
		return "g"
	}
}
