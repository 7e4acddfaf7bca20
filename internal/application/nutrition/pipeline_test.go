package nutrition

import (
	"context"
	"testing"
	"time"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
	"github.com/nutrilabel/v1/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPipeline(t *testing.T, ingredients ...recipe.Ingredient) *Pipeline {
	t.Helper()
	svc := newTestService(nil)
	return NewPipeline(svc, recipe.Recipe{Name: "session", Ingredients: ingredients}, zap.NewNop())
}

func TestPipeline_ResolveAndAggregate(t *testing.T) {
	flour := recipe.NewIngredient("flour", "", 200, "g")
	flour.Profile = nutrition.Profile{nutrition.Calories: 100, nutrition.ProteinG: 10}
	sugar := recipe.NewIngredient("sugar", "", 100, "g")
	sugar.Profile = nutrition.Profile{nutrition.Calories: 50, nutrition.ProteinG: 0}

	p := newTestPipeline(t, flour, sugar)

	for i := 0; i < 2; i++ {
		_, err := p.ResolveIngredient(context.Background(), i)
		require.NoError(t, err)
	}

	agg, err := p.Aggregate()
	require.NoError(t, err)

	cal, _ := agg.Get(nutrition.Calories)
	assert.InDelta(t, 83.33, cal, 0.01)
}

func TestPipeline_UpdateMeasurementInvalidatesDownstream(t *testing.T) {
	flour := recipe.NewIngredient("flour", "", 100, "g")
	flour.Profile = nutrition.Profile{nutrition.Calories: 364}

	p := newTestPipeline(t, flour)
	_, err := p.ResolveIngredient(context.Background(), 0)
	require.NoError(t, err)
	_, err = p.Aggregate()
	require.NoError(t, err)

	require.NoError(t, p.UpdateMeasurement(0, 200, "g"))

	// Resolution was cleared, so aggregation fails closed until re-resolved.
	_, err = p.Aggregate()
	require.Error(t, err)

	_, err = p.ResolveIngredient(context.Background(), 0)
	require.NoError(t, err)

	snap := p.Snapshot()
	assert.InDelta(t, 200.0, snap.Ingredients[0].Grams(), 1e-9)
}

func TestPipeline_StaleConversionIsDropped(t *testing.T) {
	// The ingredient uses a count unit so conversion goes through the slow
	// lookup tier; the measurement is edited while that conversion is in
	// flight, so the stale result must be discarded on arrival.
	lookup := &stubLookup{
		record: outbound.FoodRecord{Matched: true, TypicalServingGrams: 118, Description: "Bananas, raw"},
		delay:  50 * time.Millisecond,
	}
	svc := NewService(newTestConverter(&stubDensityTable{}, lookup), zap.NewNop())

	banana := recipe.NewIngredient("banana", "", 2, "whole")
	banana.Profile = nutrition.Profile{nutrition.Calories: 89}
	p := NewPipeline(svc, recipe.Recipe{Name: "session", Ingredients: []recipe.Ingredient{banana}}, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := p.ResolveIngredient(context.Background(), 0)
		done <- err
	}()

	// Edit while the lookup sleeps.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, p.UpdateMeasurement(0, 3, "whole"))

	assert.ErrorIs(t, <-done, recipe.ErrConversionSuperseded)

	snap := p.Snapshot()
	assert.False(t, snap.Ingredients[0].Resolved(), "stale conversion must not land")

	// A fresh resolve against the new measurement succeeds and reflects it.
	conv, err := p.ResolveIngredient(context.Background(), 0)
	require.NoError(t, err)
	assert.InDelta(t, 354.0, conv.Grams, 1e-9)
}

func TestPipeline_RemoveIngredientShiftsIndices(t *testing.T) {
	a := recipe.NewIngredient("a", "", 100, "g")
	b := recipe.NewIngredient("b", "", 200, "g")
	c := recipe.NewIngredient("c", "", 300, "g")

	p := newTestPipeline(t, a, b, c)
	require.NoError(t, p.RemoveIngredient(1))

	snap := p.Snapshot()
	require.Len(t, snap.Ingredients, 2)
	assert.Equal(t, "a", snap.Ingredients[0].Name)
	assert.Equal(t, "c", snap.Ingredients[1].Name)

	assert.ErrorIs(t, p.RemoveIngredient(5), recipe.ErrIngredientNotFound)
}

func TestPipeline_SetYieldWeightOnlyInvalidatesNormalizedStage(t *testing.T) {
	flour := recipe.NewIngredient("flour", "", 300, "g")
	flour.Profile = nutrition.Profile{nutrition.Calories: 100}

	p := newTestPipeline(t, flour)
	_, err := p.ResolveIngredient(context.Background(), 0)
	require.NoError(t, err)

	before, err := p.Per100g()
	require.NoError(t, err)
	cal, _ := before.Get(nutrition.Calories)
	assert.InDelta(t, 100.0, cal, 1e-9)

	require.NoError(t, p.SetYieldWeight(250))

	after, err := p.Per100g()
	require.NoError(t, err)
	cal, _ = after.Get(nutrition.Calories)
	assert.InDelta(t, 120.0, cal, 0.01)

	assert.ErrorIs(t, p.SetYieldWeight(0), recipe.ErrInvalidYieldWeight)
}

func TestPipeline_AddIngredientInvalidatesAggregate(t *testing.T) {
	a := recipe.NewIngredient("a", "", 100, "g")
	a.Profile = nutrition.Profile{nutrition.Calories: 100}

	p := newTestPipeline(t, a)
	_, err := p.ResolveIngredient(context.Background(), 0)
	require.NoError(t, err)

	agg, err := p.Aggregate()
	require.NoError(t, err)
	cal, _ := agg.Get(nutrition.Calories)
	assert.InDelta(t, 100.0, cal, 1e-9)

	b := recipe.NewIngredient("b", "", 100, "g")
	b.Profile = nutrition.Profile{nutrition.Calories: 300}
	idx := p.AddIngredient(b)
	_, err = p.ResolveIngredient(context.Background(), idx)
	require.NoError(t, err)

	agg, err = p.Aggregate()
	require.NoError(t, err)
	cal, _ = agg.Get(nutrition.Calories)
	assert.InDelta(t, 200.0, cal, 1e-9)
}
