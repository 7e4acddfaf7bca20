// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the transport layer maps requests onto
package inbound

import (
	"context"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
)

// ConvertCommand asks for a single quantity-to-grams resolution.
type ConvertCommand struct {
	Ingredient string  `json:"ingredient" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"gt=0"`
	Unit       string  `json:"unit" validate:"required"`
}

// ServingResult carries per-serving absolute values and %DV projections.
// Values are unrounded; label rounding is a presentation concern.
type ServingResult struct {
	ServingConfig recipe.ServingConfig           `json:"serving_config"`
	Absolute      nutrition.Profile              `json:"absolute"`
	PercentDV     map[nutrition.Nutrient]float64 `json:"percent_dv"`
}

// NutritionService is the calculation core's public contract. Every stage is
// a pure function of its inputs and independently callable, so a caller can
// recompute just the invalidated suffix of the pipeline.
type NutritionService interface {
	// Convert resolves one measurement to grams. It never fails: when no
	// better tier applies it degrades to a low-confidence estimate.
	Convert(ctx context.Context, cmd ConvertCommand) (recipe.Conversion, error)

	// CalculateRecipe converts all ingredients, aggregates them into one
	// per-100g profile, and normalizes it to the declared yield weight.
	CalculateRecipe(ctx context.Context, rec recipe.Recipe) (*recipe.NutritionResult, error)

	// Aggregate mass-weights resolved ingredients into a combined per-100g
	// profile. Nil is returned for an empty list or zero total mass.
	Aggregate(ingredients []recipe.Ingredient) (nutrition.Profile, error)

	// NormalizeYield re-expresses a per-100g aggregate of raw ingredients as
	// per 100g of the finished product.
	NormalizeYield(aggregate nutrition.Profile, totalRawWeightG, yieldWeightG float64) (nutrition.Profile, error)

	// Contributions breaks the batch down by ingredient: weight percentage
	// and absolute nutrient amounts supplied by each one.
	Contributions(ingredients []recipe.Ingredient) ([]recipe.Contribution, error)

	// PerServing projects a per-100g profile onto a serving configuration.
	PerServing(profile nutrition.Profile, cfg recipe.ServingConfig) (*ServingResult, error)
}
