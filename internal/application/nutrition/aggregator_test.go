package nutrition

import (
	"testing"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
	appErrors "github.com/nutrilabel/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedIngredient(name string, grams float64, profile nutrition.Profile) recipe.Ingredient {
	ing := recipe.NewIngredient(name, "", grams, "g")
	ing.Profile = profile
	ing.ApplyConversion(recipe.Conversion{
		Grams:      grams,
		Source:     recipe.SourceDirect,
		Confidence: recipe.ConfidenceHigh,
	})
	return ing
}

func TestAggregate_MassWeightedCombination(t *testing.T) {
	// 200g of A (100 cal, 10g protein per 100g) plus 100g of B (50 cal,
	// 0g protein per 100g): 250 cal and 20g protein across 300g.
	a := resolvedIngredient("a", 200, nutrition.Profile{
		nutrition.Calories: 100,
		nutrition.ProteinG: 10,
	})
	b := resolvedIngredient("b", 100, nutrition.Profile{
		nutrition.Calories: 50,
		nutrition.ProteinG: 0,
	})

	combined, err := Aggregate([]recipe.Ingredient{a, b})
	require.NoError(t, err)

	cal, ok := combined.Get(nutrition.Calories)
	require.True(t, ok)
	assert.InDelta(t, 83.33, cal, 0.01)

	prot, ok := combined.Get(nutrition.ProteinG)
	require.True(t, ok)
	assert.InDelta(t, 6.67, prot, 0.01)
}

func TestAggregate_EmptyListReturnsNil(t *testing.T) {
	combined, err := Aggregate(nil)
	assert.Nil(t, combined)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.CodeEmptyRecipe))
}

func TestAggregate_UnresolvedIngredientFailsClosed(t *testing.T) {
	resolved := resolvedIngredient("flour", 500, nutrition.Profile{nutrition.Calories: 364})
	pending := recipe.NewIngredient("mystery", "", 1, "cup")

	combined, err := Aggregate([]recipe.Ingredient{resolved, pending})
	assert.Nil(t, combined)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.CodeUnresolvedIngredient))
}

func TestAggregate_UnknownStaysUnknown(t *testing.T) {
	// Neither ingredient reports sodium, so the combined profile must not
	// invent a zero for it. One reports fiber, so fiber is known.
	a := resolvedIngredient("a", 100, nutrition.Profile{
		nutrition.Calories:      100,
		nutrition.DietaryFiberG: 5,
	})
	b := resolvedIngredient("b", 100, nutrition.Profile{
		nutrition.Calories: 200,
	})

	combined, err := Aggregate([]recipe.Ingredient{a, b})
	require.NoError(t, err)

	assert.False(t, combined.Has(nutrition.SodiumMg))
	assert.True(t, combined.Has(nutrition.DietaryFiberG))

	fiber, _ := combined.Get(nutrition.DietaryFiberG)
	assert.InDelta(t, 2.5, fiber, 1e-9)
}

func TestAggregate_SingleIngredientIsIdentity(t *testing.T) {
	profile := nutrition.Profile{
		nutrition.Calories:  250,
		nutrition.TotalFatG: 12.5,
		nutrition.SodiumMg:  480,
	}
	ing := resolvedIngredient("only", 347, profile)

	combined, err := Aggregate([]recipe.Ingredient{ing})
	require.NoError(t, err)
	for n, want := range profile {
		got, ok := combined.Get(n)
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-9, "nutrient %s", n)
	}
}

func TestAggregate_IngredientWithoutProfileContributesMassOnly(t *testing.T) {
	// Water has no attached profile: it dilutes the mixture but adds no
	// nutrients.
	flour := resolvedIngredient("flour", 100, nutrition.Profile{nutrition.Calories: 364})
	water := resolvedIngredient("water", 100, nil)

	combined, err := Aggregate([]recipe.Ingredient{flour, water})
	require.NoError(t, err)

	cal, ok := combined.Get(nutrition.Calories)
	require.True(t, ok)
	assert.InDelta(t, 182.0, cal, 1e-9)
}

func TestAggregateTotals_ReturnsBatchViewAndMass(t *testing.T) {
	a := resolvedIngredient("a", 200, nutrition.Profile{nutrition.Calories: 100})
	b := resolvedIngredient("b", 100, nutrition.Profile{nutrition.Calories: 50})

	totals, mass, err := AggregateTotals([]recipe.Ingredient{a, b})
	require.NoError(t, err)
	assert.InDelta(t, 300.0, mass, 1e-9)

	cal, _ := totals.Get(nutrition.Calories)
	assert.InDelta(t, 250.0, cal, 1e-9)
}
