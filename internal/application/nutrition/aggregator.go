package nutrition

import (
	appErrors "github.com/nutrilabel/v1/pkg/errors"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
)

// Aggregate mass-weights the per-100g nutrient profiles of resolved
// ingredients into a single per-100g profile of the combined mixture:
//
//	combined[k] = (sum over i of grams_i/100 * profile_i[k]) * 100/total_mass
//
// A nutrient key appears in the result when at least one ingredient supplies
// it; unknown values never contribute as zero. The operation fails closed:
// any ingredient without a resolved weight is an error, not a silent skip.
func Aggregate(ingredients []recipe.Ingredient) (nutrition.Profile, error) {
	if len(ingredients) == 0 {
		return nil, appErrors.NewEmptyRecipeError()
	}

	var totalMass float64
	for _, ing := range ingredients {
		if !ing.Resolved() {
			return nil, appErrors.NewUnresolvedIngredientError(ing.Name)
		}
		totalMass += ing.Grams()
	}
	if totalMass <= 0 {
		return nil, appErrors.NewZeroMassError()
	}

	totals := nutrition.NewProfile()
	for _, ing := range ingredients {
		if ing.Profile == nil {
			continue
		}
		totals.AddWeighted(ing.Profile, ing.Grams())
	}

	return totals.Scale(100.0 / totalMass), nil
}

// AggregateTotals returns the absolute nutrient totals across the whole
// batch alongside the combined mass, for callers that need both the batch
// view and the per-100g view without aggregating twice.
func AggregateTotals(ingredients []recipe.Ingredient) (nutrition.Profile, float64, error) {
	if len(ingredients) == 0 {
		return nil, 0, appErrors.NewEmptyRecipeError()
	}

	var totalMass float64
	for _, ing := range ingredients {
		if !ing.Resolved() {
			return nil, 0, appErrors.NewUnresolvedIngredientError(ing.Name)
		}
		totalMass += ing.Grams()
	}
	if totalMass <= 0 {
		return nil, 0, appErrors.NewZeroMassError()
	}

	totals := nutrition.NewProfile()
	for _, ing := range ingredients {
		if ing.Profile == nil {
			continue
		}
		totals.AddWeighted(ing.Profile, ing.Grams())
	}
	return totals, totalMass, nil
}
