package nutrition

import (
	appErrors "github.com/nutrilabel/v1/pkg/errors"

	"github.com/nutrilabel/v1/internal/domain/recipe"
)

// Contributions breaks the batch down per ingredient: each entry carries the
// ingredient's resolved mass, its percentage of the combined raw weight, and
// the absolute nutrient amounts it supplies (profile scaled by grams/100).
// Output order matches input order. Like Aggregate, it fails closed on
// unresolved ingredients.
func Contributions(ingredients []recipe.Ingredient) ([]recipe.Contribution, error) {
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

	contributions := make([]recipe.Contribution, 0, len(ingredients))
	for _, ing := range ingredients {
		c := recipe.Contribution{
			Name:          ing.Name,
			Grams:         ing.Grams(),
			WeightPercent: ing.Grams() / totalMass * 100,
		}
		if ing.Profile != nil {
			c.Nutrients = ing.Profile.Scale(ing.Grams() / 100)
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}
