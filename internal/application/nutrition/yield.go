package nutrition

import (
	appErrors "github.com/nutrilabel/v1/pkg/errors"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
)

// NormalizeYield re-expresses a per-100g-of-raw-ingredients profile as
// per-100g-of-finished-product. Cooking typically loses water, so 100g of the
// finished product contains the nutrients of more than 100g of raw inputs;
// every value is scaled by totalRawWeightG / yieldWeightG.
//
// When the yield equals the raw weight the profile passes through unchanged.
// Nutrient density rises when mass is lost (factor > 1) and falls when mass
// is gained, e.g. rice absorbing water.
func NormalizeYield(aggregate nutrition.Profile, totalRawWeightG, yieldWeightG float64) (nutrition.Profile, error) {
	if yieldWeightG <= 0 {
		return nil, appErrors.NewInvalidYieldWeightError(yieldWeightG)
	}
	if totalRawWeightG <= 0 {
		return nil, appErrors.NewZeroMassError()
	}

	factor := totalRawWeightG / yieldWeightG
	if factor == 1 {
		return aggregate.Clone(), nil
	}
	return aggregate.Scale(factor), nil
}
