// Package nutrition provides the application layer for the measurement-to-mass
// conversion and nutrient-aggregation pipeline.
package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/nutrilabel/v1/internal/domain/recipe"
	"github.com/nutrilabel/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// EstimateGramsPerUnit is the fixed fallback heuristic: assume one hundred
// grams per unit when nothing better applies. It has no unit awareness
// (100g per "1 tsp" is implausible) and is kept for parity with the
// historical behavior; results carry a low-confidence warning note.
const EstimateGramsPerUnit = 100.0

// ConvertRequest is a normalized conversion input.
type ConvertRequest struct {
	Ingredient string
	Quantity   float64
	Unit       string
}

// resolver is one tier of the conversion policy. Resolvers are tried in
// order; the first hit wins.
type resolver interface {
	resolve(ctx context.Context, req ConvertRequest) (recipe.Conversion, bool)
}

// Converter resolves ingredient measurements to gram weights using a tiered
// policy: direct mass units, the curated density table, USDA serving data,
// and finally a fixed estimate. It degrades rather than fails: a numeric
// gram value is always produced.
type Converter struct {
	units     recipe.UnitTable
	resolvers []resolver
	logger    *zap.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithLookupTimeout bounds the external food lookup inside the USDA tier.
func WithLookupTimeout(d time.Duration) ConverterOption {
	return func(c *Converter) {
		for _, r := range c.resolvers {
			if ur, ok := r.(*usdaResolver); ok {
				ur.timeout = d
			}
		}
	}
}

// NewConverter creates a converter backed by the given density table and
// food lookup. Either collaborator may be nil, in which case its tier is
// skipped and conversion degrades to the next tier.
func NewConverter(table outbound.DensityTable, lookup outbound.FoodLookup, logger *zap.Logger, opts ...ConverterOption) *Converter {
	units := recipe.DefaultUnits
	c := &Converter{
		units:  units,
		logger: logger.Named("unit-converter"),
	}
	c.resolvers = []resolver{
		directResolver{units: units},
		tableResolver{units: units, table: table},
		&usdaResolver{units: units, lookup: lookup, timeout: 5 * time.Second, logger: c.logger},
		estimateResolver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert resolves a measurement to grams. The returned conversion always
// carries a gram value, a confidence tier, and a source tag; unresolvable
// inputs degrade to the estimate tier instead of failing.
func (c *Converter) Convert(ctx context.Context, ingredientName string, quantity float64, unit string) recipe.Conversion {
	req := ConvertRequest{
		Ingredient: ingredientName,
		Quantity:   quantity,
		Unit:       c.units.Normalize(unit),
	}

	for _, r := range c.resolvers {
		if conv, ok := r.resolve(ctx, req); ok {
			c.logger.Debug("Resolved measurement",
				zap.String("ingredient", ingredientName),
				zap.Float64("quantity", quantity),
				zap.String("unit", req.Unit),
				zap.Float64("grams", conv.Grams),
				zap.String("source", string(conv.Source)),
				zap.String("confidence", string(conv.Confidence)),
			)
			return conv
		}
	}

	// Unreachable: the estimate tier always resolves.
	return recipe.Conversion{
		Grams:      quantity * EstimateGramsPerUnit,
		Source:     recipe.SourceEstimate,
		Confidence: recipe.ConfidenceLow,
	}
}

// directResolver handles exact mass units with fixed linear factors. A unit
// of "g" always resolves here regardless of ingredient name.
type directResolver struct {
	units recipe.UnitTable
}

func (r directResolver) resolve(_ context.Context, req ConvertRequest) (recipe.Conversion, bool) {
	factor, ok := r.units.GramsPerUnit[req.Unit]
	if !ok {
		return recipe.Conversion{}, false
	}
	return recipe.Conversion{
		Grams:      req.Quantity * factor,
		Source:     recipe.SourceDirect,
		Confidence: recipe.ConfidenceHigh,
	}, true
}

// tableResolver consults the curated ingredient density table for volume and
// count units. Exact name matches earn high confidence, fuzzy matches medium.
type tableResolver struct {
	units recipe.UnitTable
	table outbound.DensityTable
}

func (r tableResolver) resolve(_ context.Context, req ConvertRequest) (recipe.Conversion, bool) {
	if r.table == nil {
		return recipe.Conversion{}, false
	}
	if _, recognized := r.units.Class(req.Unit); !recognized {
		return recipe.Conversion{}, false
	}
	res, ok := r.table.Density(req.Ingredient, req.Unit)
	if !ok {
		return recipe.Conversion{}, false
	}
	conf := recipe.ConfidenceHigh
	note := res.Note
	switch res.Match {
	case outbound.MatchFuzzy:
		conf = recipe.ConfidenceMedium
		if note == "" {
			note = fmt.Sprintf("Matched %q to the conversion table by partial name", req.Ingredient)
		}
	case outbound.MatchApproximate:
		conf = recipe.ConfidenceMedium
	}
	return recipe.Conversion{
		Grams:      req.Quantity * res.GramsPerUnit,
		Source:     recipe.SourceTable,
		Confidence: conf,
		Note:       note,
	}, true
}

// usdaResolver derives a weight from a matching food record's declared
// serving size. Serving weights describe discrete items, so this tier only
// answers count units; multiplying a volume quantity by a per-item weight
// would treat "500 ml" as 500 servings. Lookup failures and timeouts are
// recovered by falling through to the estimate tier, never propagated.
type usdaResolver struct {
	units   recipe.UnitTable
	lookup  outbound.FoodLookup
	timeout time.Duration
	logger  *zap.Logger
}

func (r *usdaResolver) resolve(ctx context.Context, req ConvertRequest) (recipe.Conversion, bool) {
	if r.lookup == nil {
		return recipe.Conversion{}, false
	}
	if class, ok := r.units.Class(req.Unit); !ok || class != recipe.UnitClassCount {
		return recipe.Conversion{}, false
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	record, err := r.lookup.Lookup(lookupCtx, req.Ingredient)
	if err != nil {
		r.logger.Warn("Food lookup failed, degrading to estimate",
			zap.String("ingredient", req.Ingredient),
			zap.Error(err),
		)
		return recipe.Conversion{}, false
	}
	if !record.Matched || record.TypicalServingGrams <= 0 {
		return recipe.Conversion{}, false
	}

	return recipe.Conversion{
		Grams:      req.Quantity * record.TypicalServingGrams,
		Source:     recipe.SourceUSDA,
		Confidence: recipe.ConfidenceMedium,
		Note:       fmt.Sprintf("Derived from USDA serving weight for %q (%.0fg per %s)", record.Description, record.TypicalServingGrams, req.Unit),
	}, true
}

// estimateResolver is the terminal tier. It always resolves.
type estimateResolver struct{}

func (estimateResolver) resolve(_ context.Context, req ConvertRequest) (recipe.Conversion, bool) {
	return recipe.Conversion{
		Grams:      req.Quantity * EstimateGramsPerUnit,
		Source:     recipe.SourceEstimate,
		Confidence: recipe.ConfidenceLow,
		Note: fmt.Sprintf("Estimated %.0fg per %s for %q. Please verify and adjust.",
			EstimateGramsPerUnit, req.Unit, req.Ingredient),
	}, true
}
