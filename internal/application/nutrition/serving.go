package nutrition

import (
	"fmt"

	appErrors "github.com/nutrilabel/v1/pkg/errors"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
	"github.com/nutrilabel/v1/internal/ports/inbound"
)

// PerServing projects a per-100g profile onto a serving configuration.
// Absolute values scale linearly by servingSizeG/100 and are computed only
// for nutrients the profile actually knows. %DV is computed only for
// nutrients with an established daily value, so calories, trans fat and
// total sugars never appear in the %DV map. Values are unrounded; label
// rounding is applied by the label layer.
func PerServing(profile nutrition.Profile, cfg recipe.ServingConfig) (*inbound.ServingResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, appErrors.NewInvalidServingConfigError(err.Error())
	}
	if profile == nil {
		return nil, appErrors.NewInvalidServingConfigError("no nutrient profile to project")
	}

	absolute := profile.Scale(cfg.ServingSizeG / 100.0)

	percentDV := make(map[nutrition.Nutrient]float64)
	for n, amount := range absolute {
		if pct, ok := nutrition.PercentDV(n, amount); ok {
			percentDV[n] = pct
		}
	}

	return &inbound.ServingResult{
		ServingConfig: cfg,
		Absolute:      absolute,
		PercentDV:     percentDV,
	}, nil
}

// SuggestServings proposes a round servings-per-container count for a batch,
// preferring common household splits.
func SuggestServings(yieldWeightG float64) (servings float64, servingSizeG float64) {
	if yieldWeightG <= 0 {
		return 1, 0
	}
	for _, n := range []float64{4, 6, 8, 12, 2, 16, 24} {
		size := yieldWeightG / n
		if size >= 30 && size <= 250 {
			return n, size
		}
	}
	return 1, yieldWeightG
}

// DescribeServing renders a human serving description when the caller did
// not supply one.
func DescribeServing(cfg recipe.ServingConfig) string {
	if cfg.ServingSizeDescription != "" {
		return cfg.ServingSizeDescription
	}
	return fmt.Sprintf("%.0fg", cfg.ServingSizeG)
}
