// Package label renders calculation results as FDA Nutrition Facts values,
// applying the rounding rules of 21 CFR 101.9 to the exact pipeline numbers.
package label

import (
	"fmt"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/ports/inbound"
	appErrors "github.com/nutrilabel/v1/pkg/errors"
	"go.uber.org/zap"
)

// LabelValue is one declared line on a Nutrition Facts panel.
type LabelValue struct {
	Nutrient nutrition.Nutrient `json:"nutrient"`
	// Rounded declaration amount. For "less than" declarations this holds
	// the marker value (2 for "<5mg" cholesterol, 0.5 for "<1g").
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	// Display is the printable declaration, e.g. "230mg" or "less than 1g".
	Display string `json:"display"`
	// PercentDV is nil for nutrients with no established daily value.
	PercentDV *int `json:"percent_dv,omitempty"`
}

// Label is a complete rendered Nutrition Facts panel for one serving.
type Label struct {
	ServingSizeG           float64      `json:"serving_size_g"`
	ServingSizeDescription string       `json:"serving_size_description"`
	ServingsPerContainer   string       `json:"servings_per_container"`
	Calories               float64      `json:"calories"`
	Values                 []LabelValue `json:"values"`
}

// labelOrder is the FDA-mandated declaration order below the calories line.
var labelOrder = []nutrition.Nutrient{
	nutrition.TotalFatG,
	nutrition.SaturatedFatG,
	nutrition.TransFatG,
	nutrition.CholesterolMg,
	nutrition.SodiumMg,
	nutrition.TotalCarbohydrateG,
	nutrition.DietaryFiberG,
	nutrition.TotalSugarsG,
	nutrition.AddedSugarsG,
	nutrition.ProteinG,
	nutrition.VitaminDMcg,
	nutrition.CalciumMg,
	nutrition.IronMg,
	nutrition.PotassiumMg,
}

// Service renders serving projections into label declarations.
type Service struct {
	logger *zap.Logger
}

// NewService creates the label rendering service.
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger.Named("label-service")}
}

// Render produces the rounded Nutrition Facts panel for a serving
// projection. Nutrients the profile does not know are omitted entirely
// rather than declared as zero.
func (s *Service) Render(serving *inbound.ServingResult) (*Label, error) {
	if serving == nil {
		return nil, appErrors.NewBadRequestError("no serving projection to render")
	}

	lbl := &Label{
		ServingSizeG:           nutrition.RoundServingSizeMetric(serving.ServingConfig.ServingSizeG),
		ServingSizeDescription: serving.ServingConfig.ServingSizeDescription,
		ServingsPerContainer:   formatServings(serving.ServingConfig.ServingsPerContainer),
	}
	if lbl.ServingSizeDescription == "" {
		lbl.ServingSizeDescription = fmt.Sprintf("%.0fg", lbl.ServingSizeG)
	}

	if cal, ok := serving.Absolute.Get(nutrition.Calories); ok {
		lbl.Calories = nutrition.RoundCalories(cal)
	}

	for _, n := range labelOrder {
		amount, ok := serving.Absolute.Get(n)
		if !ok {
			continue
		}
		lv := LabelValue{
			Nutrient: n,
			Amount:   roundAmount(n, amount),
			Unit:     n.Unit(),
		}
		lv.Display = formatAmount(n, lv.Amount)
		if pct, ok := serving.PercentDV[n]; ok {
			rounded := nutrition.RoundPercentDV(n, pct)
			lv.PercentDV = &rounded
		}
		lbl.Values = append(lbl.Values, lv)
	}

	s.logger.Debug("Rendered nutrition label",
		zap.Float64("serving_size_g", lbl.ServingSizeG),
		zap.Int("declared_values", len(lbl.Values)),
	)
	return lbl, nil
}

// roundAmount applies the nutrient-specific declaration rounding rule.
func roundAmount(n nutrition.Nutrient, amount float64) float64 {
	switch n {
	case nutrition.TotalFatG, nutrition.SaturatedFatG, nutrition.TransFatG:
		return nutrition.RoundFat(amount)
	case nutrition.CholesterolMg:
		return nutrition.RoundCholesterol(amount)
	case nutrition.SodiumMg, nutrition.PotassiumMg:
		return nutrition.RoundSodiumPotassium(amount)
	default:
		return nutrition.RoundCarbProtein(amount)
	}
}

// formatAmount renders the declaration string, including the "less than"
// forms required for small cholesterol and carbohydrate/protein amounts.
func formatAmount(n nutrition.Nutrient, rounded float64) string {
	unit := n.Unit()
	switch n {
	case nutrition.CholesterolMg:
		if rounded == 2 {
			return "less than 5mg"
		}
	case nutrition.TotalFatG, nutrition.SaturatedFatG, nutrition.TransFatG:
		// Fat declares halves below 5g.
		return trimTrailingZero(rounded) + unit
	default:
		if rounded == 0.5 {
			return "less than 1" + unit
		}
	}
	return trimTrailingZero(rounded) + unit
}

// formatServings renders the servings-per-container declaration, adding the
// "about" prefix when the rounded count is approximate.
func formatServings(servings float64) string {
	rounded, about := nutrition.RoundServingsPerContainer(servings)
	text := trimTrailingZero(rounded)
	if about && rounded != servings {
		return "about " + text
	}
	return text
}

func trimTrailingZero(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
