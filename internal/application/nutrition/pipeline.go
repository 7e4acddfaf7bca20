package nutrition

import (
	"context"
	"sync"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
	"go.uber.org/zap"
)

// Pipeline is a stateful editing session over one recipe. It keeps the
// ingredient list as an index-addressed arena with per-ingredient generation
// counters, so a conversion that was still in flight when the user edited
// the same row again can never overwrite the newer result. Downstream memos
// (aggregate, yield-normalized profile) are invalidated top-down on any
// ingredient change and recomputed lazily.
type Pipeline struct {
	mu      sync.Mutex
	service *Service
	logger  *zap.Logger

	recipe      recipe.Recipe
	generations []uint64

	// Memoized stage outputs; nil when stale.
	aggregate nutrition.Profile
	per100g   nutrition.Profile
}

// NewPipeline starts an editing session for the given recipe.
func NewPipeline(service *Service, rec recipe.Recipe, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		service:     service,
		logger:      logger.Named("pipeline"),
		recipe:      rec,
		generations: make([]uint64, len(rec.Ingredients)),
	}
}

// Snapshot returns a copy of the current recipe state.
func (p *Pipeline) Snapshot() recipe.Recipe {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.recipe
	out.Ingredients = make([]recipe.Ingredient, len(p.recipe.Ingredients))
	copy(out.Ingredients, p.recipe.Ingredients)
	return out
}

// AddIngredient appends an ingredient and invalidates downstream stages.
func (p *Pipeline) AddIngredient(ing recipe.Ingredient) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recipe.Ingredients = append(p.recipe.Ingredients, ing)
	p.generations = append(p.generations, 0)
	p.invalidateDownstreamLocked()
	return len(p.recipe.Ingredients) - 1
}

// RemoveIngredient deletes the ingredient at index. Remaining ingredients
// keep their relative order; indices above shift down by one.
func (p *Pipeline) RemoveIngredient(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.recipe.Ingredients) {
		return recipe.ErrIngredientNotFound
	}
	p.recipe.Ingredients = append(p.recipe.Ingredients[:index], p.recipe.Ingredients[index+1:]...)
	p.generations = append(p.generations[:index], p.generations[index+1:]...)
	p.invalidateDownstreamLocked()
	return nil
}

// UpdateMeasurement changes an ingredient's quantity and unit, clears its
// resolution, and bumps its generation so any in-flight conversion for the
// previous measurement is discarded on arrival.
func (p *Pipeline) UpdateMeasurement(index int, quantity float64, unit string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.recipe.Ingredients) {
		return recipe.ErrIngredientNotFound
	}
	ing := &p.recipe.Ingredients[index]
	ing.Quantity = quantity
	ing.Unit = unit
	ing.InvalidateConversion()
	p.generations[index]++
	p.invalidateDownstreamLocked()
	return nil
}

// SetProfile attaches a per-100g nutrient profile to an ingredient, e.g.
// after the user picked a database match. The resolved weight is unaffected.
func (p *Pipeline) SetProfile(index int, profile nutrition.Profile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.recipe.Ingredients) {
		return recipe.ErrIngredientNotFound
	}
	p.recipe.Ingredients[index].Profile = profile
	p.invalidateDownstreamLocked()
	return nil
}

// SetYieldWeight declares the finished weight of the batch. Only the
// yield-normalized stage is invalidated; the raw aggregate stays valid.
func (p *Pipeline) SetYieldWeight(grams float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if grams <= 0 {
		return recipe.ErrInvalidYieldWeight
	}
	p.recipe.YieldWeightG = &grams
	p.per100g = nil
	return nil
}

// ResolveIngredient converts the ingredient at index to grams. The lookup
// runs outside the lock; if the measurement changed while the conversion was
// in flight, the stale result is dropped and ErrConversionSuperseded is
// returned so the caller can retry against the new state.
func (p *Pipeline) ResolveIngredient(ctx context.Context, index int) (recipe.Conversion, error) {
	p.mu.Lock()
	if index < 0 || index >= len(p.recipe.Ingredients) {
		p.mu.Unlock()
		return recipe.Conversion{}, recipe.ErrIngredientNotFound
	}
	ing := p.recipe.Ingredients[index]
	gen := p.generations[index]
	p.mu.Unlock()

	conv := p.service.converter.Convert(ctx, ing.Name, ing.Quantity, ing.Unit)

	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= len(p.recipe.Ingredients) || p.generations[index] != gen {
		p.logger.Debug("Dropping superseded conversion",
			zap.Int("index", index),
			zap.String("ingredient", ing.Name),
		)
		return recipe.Conversion{}, recipe.ErrConversionSuperseded
	}
	p.recipe.Ingredients[index].ApplyConversion(conv)
	p.invalidateDownstreamLocked()
	return conv, nil
}

// Aggregate returns the per-100g profile of the raw ingredient mixture,
// computing it only when stale.
func (p *Pipeline) Aggregate() (nutrition.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.aggregate != nil {
		return p.aggregate.Clone(), nil
	}
	agg, err := Aggregate(p.recipe.Ingredients)
	if err != nil {
		return nil, err
	}
	p.aggregate = agg
	return agg.Clone(), nil
}

// Per100g returns the yield-normalized per-100g profile of the finished
// product, computing the aggregate first if needed.
func (p *Pipeline) Per100g() (nutrition.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.per100g != nil {
		return p.per100g.Clone(), nil
	}
	if p.aggregate == nil {
		agg, err := Aggregate(p.recipe.Ingredients)
		if err != nil {
			return nil, err
		}
		p.aggregate = agg
	}
	raw := p.recipe.TotalRawWeight()
	norm, err := NormalizeYield(p.aggregate, raw, p.recipe.EffectiveYieldWeight())
	if err != nil {
		return nil, err
	}
	p.per100g = norm
	return norm.Clone(), nil
}

// invalidateDownstreamLocked marks every stage after ingredient resolution
// stale. Callers must hold mu.
func (p *Pipeline) invalidateDownstreamLocked() {
	p.aggregate = nil
	p.per100g = nil
}
