package nutrition

import (
	"context"
	"fmt"

	appErrors "github.com/nutrilabel/v1/pkg/errors"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
	"github.com/nutrilabel/v1/internal/ports/inbound"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultMaxConcurrentConversions bounds the fan-out when resolving a
// recipe's ingredients, mainly to keep pressure off the external food lookup.
const defaultMaxConcurrentConversions = 8

// Service implements the calculation use cases. Each pipeline stage is a
// pure function of its inputs; the service only orchestrates and logs.
type Service struct {
	converter     *Converter
	maxConcurrent int
	logger        *zap.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMaxConcurrency bounds concurrent ingredient conversions. Values below
// one keep the default.
func WithMaxConcurrency(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// NewService creates the nutrition calculation service.
func NewService(converter *Converter, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		converter:     converter,
		maxConcurrent: defaultMaxConcurrentConversions,
		logger:        logger.Named("nutrition-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure interface compliance at compile time.
var _ inbound.NutritionService = (*Service)(nil)

// Convert resolves one measurement to grams.
func (s *Service) Convert(ctx context.Context, cmd inbound.ConvertCommand) (recipe.Conversion, error) {
	if cmd.Ingredient == "" {
		return recipe.Conversion{}, appErrors.NewValidationError("ingredient name is required")
	}
	if cmd.Quantity <= 0 {
		return recipe.Conversion{}, appErrors.NewValidationError(
			fmt.Sprintf("quantity must be greater than 0, got %g", cmd.Quantity))
	}
	return s.converter.Convert(ctx, cmd.Ingredient, cmd.Quantity, cmd.Unit), nil
}

// CalculateRecipe runs the full pipeline: resolve every ingredient to grams,
// aggregate the profiles mass-weighted, and normalize to the declared yield
// weight. Conversions run concurrently; each result lands back on its own
// ingredient by index, so output order matches input order.
func (s *Service) CalculateRecipe(ctx context.Context, rec recipe.Recipe) (*recipe.NutritionResult, error) {
	if len(rec.Ingredients) == 0 {
		return nil, appErrors.NewEmptyRecipeError()
	}

	ingredients := make([]recipe.Ingredient, len(rec.Ingredients))
	copy(ingredients, rec.Ingredients)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i := range ingredients {
		if ingredients[i].Resolved() {
			continue
		}
		i := i
		g.Go(func() error {
			ing := &ingredients[i]
			conv := s.converter.Convert(gctx, ing.Name, ing.Quantity, ing.Unit)
			ing.ApplyConversion(conv)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, "ingredient conversion failed")
	}

	totals, totalMass, err := AggregateTotals(ingredients)
	if err != nil {
		return nil, err
	}
	per100gRaw := totals.Scale(100.0 / totalMass)

	yieldWeight := totalMass
	if rec.YieldWeightG != nil {
		if *rec.YieldWeightG <= 0 {
			return nil, appErrors.NewInvalidYieldWeightError(*rec.YieldWeightG)
		}
		yieldWeight = *rec.YieldWeightG
	}

	per100g, err := NormalizeYield(per100gRaw, totalMass, yieldWeight)
	if err != nil {
		return nil, err
	}

	contributions, err := Contributions(ingredients)
	if err != nil {
		return nil, err
	}

	result := &recipe.NutritionResult{
		RecipeName:       rec.Name,
		Ingredients:      ingredients,
		TotalRawWeightG:  totalMass,
		YieldWeightG:     yieldWeight,
		TotalNutrition:   totals,
		NutritionPer100g: per100g,
		Confidence:       recipe.WorstConfidence(ingredients),
		Contributions:    contributions,
		Flags:            collectFlags(rec, ingredients),
	}

	s.logger.Info("Calculated recipe nutrition",
		zap.String("recipe", rec.Name),
		zap.Int("ingredients", len(ingredients)),
		zap.Float64("total_raw_weight_g", totalMass),
		zap.Float64("yield_weight_g", yieldWeight),
		zap.String("confidence", string(result.Confidence)),
		zap.Int("flags", len(result.Flags)),
	)
	return result, nil
}

// Aggregate mass-weights resolved ingredients into one per-100g profile.
func (s *Service) Aggregate(ingredients []recipe.Ingredient) (nutrition.Profile, error) {
	return Aggregate(ingredients)
}

// NormalizeYield adjusts a per-100g raw aggregate to the finished yield.
func (s *Service) NormalizeYield(aggregate nutrition.Profile, totalRawWeightG, yieldWeightG float64) (nutrition.Profile, error) {
	return NormalizeYield(aggregate, totalRawWeightG, yieldWeightG)
}

// PerServing projects a per-100g profile onto a serving configuration.
func (s *Service) PerServing(profile nutrition.Profile, cfg recipe.ServingConfig) (*inbound.ServingResult, error) {
	return PerServing(profile, cfg)
}

// Contributions breaks the batch down by ingredient.
func (s *Service) Contributions(ingredients []recipe.Ingredient) ([]recipe.Contribution, error) {
	return Contributions(ingredients)
}

// collectFlags gathers the caller-visible warnings for a calculation.
func collectFlags(rec recipe.Recipe, ingredients []recipe.Ingredient) []recipe.Flag {
	flags := make([]recipe.Flag, 0, 4)
	for _, ing := range ingredients {
		if ing.Confidence == recipe.ConfidenceLow {
			flags = append(flags, recipe.Flag{
				Type:       recipe.FlagLowConfidenceConversion,
				Ingredient: ing.Name,
				Message:    fmt.Sprintf("Weight for %q was estimated; verify the gram amount", ing.Name),
				Severity:   "warning",
			})
		}
		if ing.Profile == nil || ing.Profile.IsEmpty() {
			flags = append(flags, recipe.Flag{
				Type:       recipe.FlagMissingNutrition,
				Ingredient: ing.Name,
				Message:    fmt.Sprintf("No nutrient data attached for %q; it contributes mass but no nutrients", ing.Name),
				Severity:   "warning",
			})
		}
	}
	if rec.YieldWeightG == nil {
		flags = append(flags, recipe.Flag{
			Type:     recipe.FlagNoYieldWeight,
			Message:  "No yield weight declared; assuming no cooking loss",
			Severity: "info",
		})
	}
	return flags
}
