// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
)

// RecipeFactory creates randomized but plausible recipes and ingredients.
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a factory with a seeded faker so tests stay
// reproducible.
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Profile generates a per-100g nutrient profile with plausible ranges.
func (f *RecipeFactory) Profile() nutrition.Profile {
	p := nutrition.NewProfile()
	p.Set(nutrition.Calories, f.faker.Float64Range(20, 600))
	p.Set(nutrition.ProteinG, f.faker.Float64Range(0, 30))
	p.Set(nutrition.TotalFatG, f.faker.Float64Range(0, 40))
	p.Set(nutrition.TotalCarbohydrateG, f.faker.Float64Range(0, 80))
	p.Set(nutrition.SodiumMg, f.faker.Float64Range(0, 1500))
	return p
}

// ResolvedIngredient generates an ingredient with a direct gram weight and
// an attached profile, ready for aggregation.
func (f *RecipeFactory) ResolvedIngredient() recipe.Ingredient {
	grams := f.faker.Float64Range(10, 800)
	ing := recipe.NewIngredient(f.faker.Vegetable(), "", grams, "g")
	ing.Profile = f.Profile()
	ing.ApplyConversion(recipe.Conversion{
		Grams:      grams,
		Source:     recipe.SourceDirect,
		Confidence: recipe.ConfidenceHigh,
	})
	return ing
}

// PendingIngredient generates an ingredient in a volume unit that still
// needs conversion.
func (f *RecipeFactory) PendingIngredient() recipe.Ingredient {
	units := []string{"cup", "tbsp", "tsp"}
	ing := recipe.NewIngredient(f.faker.Fruit(), "", f.faker.Float64Range(0.25, 3), units[f.faker.IntRange(0, len(units)-1)])
	ing.Profile = f.Profile()
	return ing
}

// Recipe generates a recipe with n resolved ingredients.
func (f *RecipeFactory) Recipe(n int) recipe.Recipe {
	rec := recipe.Recipe{Name: f.faker.Dinner()}
	for i := 0; i < n; i++ {
		rec.Ingredients = append(rec.Ingredients, f.ResolvedIngredient())
	}
	return rec
}
