package nutrition

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
	"github.com/nutrilabel/v1/internal/ports/inbound"
	"github.com/nutrilabel/v1/internal/ports/outbound"
	appErrors "github.com/nutrilabel/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(table *stubDensityTable) *Service {
	if table == nil {
		table = &stubDensityTable{}
	}
	return NewService(newTestConverter(table, nil), zap.NewNop())
}

func TestService_Convert_Validation(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Convert(context.Background(), inbound.ConvertCommand{Quantity: 1, Unit: "g"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.CodeValidationFailed))

	_, err = svc.Convert(context.Background(), inbound.ConvertCommand{Ingredient: "flour", Quantity: 0, Unit: "g"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.CodeValidationFailed))
}

// trackingLookup records how many lookups run at the same time.
type trackingLookup struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
}

func (l *trackingLookup) Lookup(ctx context.Context, name string) (outbound.FoodRecord, error) {
	l.mu.Lock()
	l.inFlight++
	if l.inFlight > l.maxSeen {
		l.maxSeen = l.inFlight
	}
	l.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	l.mu.Lock()
	l.inFlight--
	l.mu.Unlock()
	return outbound.FoodRecord{Matched: true, TypicalServingGrams: 50}, nil
}

func TestService_CalculateRecipe_RespectsConcurrencyBound(t *testing.T) {
	lookup := &trackingLookup{}
	svc := NewService(newTestConverter(&stubDensityTable{}, lookup), zap.NewNop(),
		WithMaxConcurrency(1))
	assert.Equal(t, 1, svc.maxConcurrent)

	rec := recipe.Recipe{Name: "serial batch"}
	for i := 0; i < 4; i++ {
		rec.Ingredients = append(rec.Ingredients, recipe.NewIngredient("apple", "", 1, "whole"))
	}

	_, err := svc.CalculateRecipe(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, 1, lookup.maxSeen, "conversions must not exceed the configured bound")

	// Non-positive values keep the default bound.
	svc = NewService(newTestConverter(&stubDensityTable{}, nil), zap.NewNop(), WithMaxConcurrency(0))
	assert.Equal(t, defaultMaxConcurrentConversions, svc.maxConcurrent)
}

func TestService_CalculateRecipe_FullPipeline(t *testing.T) {
	svc := newTestService(nil)

	yield := 250.0
	rec := recipe.Recipe{
		Name: "test batch",
		Ingredients: []recipe.Ingredient{
			func() recipe.Ingredient {
				ing := recipe.NewIngredient("a", "200g a", 200, "g")
				ing.Profile = nutrition.Profile{nutrition.Calories: 100, nutrition.ProteinG: 10}
				return ing
			}(),
			func() recipe.Ingredient {
				ing := recipe.NewIngredient("b", "100g b", 100, "g")
				ing.Profile = nutrition.Profile{nutrition.Calories: 50, nutrition.ProteinG: 0}
				return ing
			}(),
		},
		YieldWeightG: &yield,
	}

	result, err := svc.CalculateRecipe(context.Background(), rec)
	require.NoError(t, err)

	assert.InDelta(t, 300.0, result.TotalRawWeightG, 1e-9)
	assert.InDelta(t, 250.0, result.YieldWeightG, 1e-9)

	// 250 cal over 300g raw, renormalized to 250g yield: 100 cal per 100g.
	cal, ok := result.NutritionPer100g.Get(nutrition.Calories)
	require.True(t, ok)
	assert.InDelta(t, 100.0, cal, 0.01)

	totalCal, _ := result.TotalNutrition.Get(nutrition.Calories)
	assert.InDelta(t, 250.0, totalCal, 1e-9)

	// All inputs were direct gram measurements.
	assert.Equal(t, recipe.ConfidenceHigh, result.Confidence)
	for _, ing := range result.Ingredients {
		assert.Equal(t, recipe.SourceDirect, ing.Source)
	}

	require.Len(t, result.Contributions, 2)
	assert.InDelta(t, 66.6666, result.Contributions[0].WeightPercent, 1e-3)
	assert.InDelta(t, 200.0, result.Contributions[0].Nutrients[nutrition.Calories], 1e-9)
	assert.InDelta(t, 33.3333, result.Contributions[1].WeightPercent, 1e-3)
}

func TestService_CalculateRecipe_ConfidenceIsWorstOf(t *testing.T) {
	svc := newTestService(nil)

	ingA := recipe.NewIngredient("flour", "", 500, "g")
	ingA.Profile = nutrition.Profile{nutrition.Calories: 364}
	// No table entry and no lookup: "cup" degrades to a low-confidence
	// estimate, which must drag the whole recipe down.
	ingB := recipe.NewIngredient("mystery mix", "", 1, "cup")
	ingB.Profile = nutrition.Profile{nutrition.Calories: 50}

	result, err := svc.CalculateRecipe(context.Background(), recipe.Recipe{
		Name:        "mixed confidence",
		Ingredients: []recipe.Ingredient{ingA, ingB},
	})
	require.NoError(t, err)
	assert.Equal(t, recipe.ConfidenceLow, result.Confidence)

	var found bool
	for _, f := range result.Flags {
		if f.Type == recipe.FlagLowConfidenceConversion && f.Ingredient == "mystery mix" {
			found = true
		}
	}
	assert.True(t, found, "expected a low-confidence flag for the estimated ingredient")
}

func TestService_CalculateRecipe_EmptyRecipe(t *testing.T) {
	svc := newTestService(nil)

	result, err := svc.CalculateRecipe(context.Background(), recipe.Recipe{Name: "empty"})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.CodeEmptyRecipe))
}

func TestService_CalculateRecipe_NoYieldDefaultsToRawWeight(t *testing.T) {
	svc := newTestService(nil)

	ing := recipe.NewIngredient("flour", "", 400, "g")
	ing.Profile = nutrition.Profile{nutrition.Calories: 364}

	result, err := svc.CalculateRecipe(context.Background(), recipe.Recipe{
		Name:        "no yield",
		Ingredients: []recipe.Ingredient{ing},
	})
	require.NoError(t, err)
	assert.InDelta(t, result.TotalRawWeightG, result.YieldWeightG, 1e-9)

	var flagged bool
	for _, f := range result.Flags {
		if f.Type == recipe.FlagNoYieldWeight {
			flagged = true
		}
	}
	assert.True(t, flagged)

	// With no cooking loss the per-100g profile equals the raw aggregate.
	cal, _ := result.NutritionPer100g.Get(nutrition.Calories)
	assert.InDelta(t, 364.0, cal, 1e-9)
}

func TestService_CalculateRecipe_MissingNutritionFlag(t *testing.T) {
	svc := newTestService(nil)

	flour := recipe.NewIngredient("flour", "", 100, "g")
	flour.Profile = nutrition.Profile{nutrition.Calories: 364}
	water := recipe.NewIngredient("water", "", 200, "g")

	result, err := svc.CalculateRecipe(context.Background(), recipe.Recipe{
		Name:        "dough",
		Ingredients: []recipe.Ingredient{flour, water},
	})
	require.NoError(t, err)

	var found bool
	for _, f := range result.Flags {
		if f.Type == recipe.FlagMissingNutrition && f.Ingredient == "water" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestService_CalculateRecipe_InvalidYield(t *testing.T) {
	svc := newTestService(nil)

	yield := -1.0
	ing := recipe.NewIngredient("flour", "", 100, "g")
	ing.Profile = nutrition.Profile{nutrition.Calories: 364}

	_, err := svc.CalculateRecipe(context.Background(), recipe.Recipe{
		Name:         "bad yield",
		Ingredients:  []recipe.Ingredient{ing},
		YieldWeightG: &yield,
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.CodeInvalidYieldWeight))
}

func TestService_RoundTrip_AggregateThenNormalizeAtRawWeightIsIdentity(t *testing.T) {
	svc := newTestService(nil)

	a := resolvedIngredient("a", 123, nutrition.Profile{
		nutrition.Calories: 217,
		nutrition.SodiumMg: 312,
	})
	b := resolvedIngredient("b", 377, nutrition.Profile{
		nutrition.Calories: 88,
		nutrition.SodiumMg: 12,
	})
	ingredients := []recipe.Ingredient{a, b}

	agg, err := svc.Aggregate(ingredients)
	require.NoError(t, err)

	raw := a.Grams() + b.Grams()
	norm, err := svc.NormalizeYield(agg, raw, raw)
	require.NoError(t, err)

	for n, want := range agg {
		got, ok := norm.Get(n)
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-9, "nutrient %s", n)
	}
}
