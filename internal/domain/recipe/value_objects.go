package recipe

import (
	"errors"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Confidence is a coarse reliability tier attached to a derived gram weight,
// reflecting how directly it was measured versus estimated.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

var confidenceRank = map[Confidence]int{
	ConfidenceHigh:   3,
	ConfidenceMedium: 2,
	ConfidenceLow:    1,
}

// Rank returns a comparable ordering for confidence tiers; higher is better.
// Unknown tiers rank below low.
func (c Confidence) Rank() int {
	return confidenceRank[c]
}

// Worst returns the lower of two confidence tiers.
func (c Confidence) Worst(other Confidence) Confidence {
	if other.Rank() < c.Rank() {
		return other
	}
	return c
}

// ConversionSource records how a quantity-to-grams conversion was determined.
type ConversionSource string

const (
	// SourceDirect means the unit was already a mass unit.
	SourceDirect ConversionSource = "direct"
	// SourceTable means the curated ingredient density table matched.
	SourceTable ConversionSource = "table"
	// SourceUSDA means the weight was derived from a USDA food record.
	SourceUSDA ConversionSource = "usda"
	// SourceEstimate means the fixed fallback heuristic was used.
	SourceEstimate ConversionSource = "estimate"
)

// Conversion is the result of resolving a quantity and unit to grams.
type Conversion struct {
	Grams      float64          `json:"grams"`
	Source     ConversionSource `json:"source"`
	Confidence Confidence       `json:"confidence"`
	Note       string           `json:"note,omitempty"`
}

// ServingConfig describes how the finished recipe is portioned.
type ServingConfig struct {
	ServingSizeG           float64 `json:"serving_size_g" validate:"required,gt=0"`
	ServingSizeDescription string  `json:"serving_size_description"`
	ServingsPerContainer   float64 `json:"servings_per_container" validate:"required,gt=0"`
}

// Validate validates the serving configuration
func (c ServingConfig) Validate() error {
	if c.ServingSizeG <= 0 {
		return ErrInvalidServingSize
	}
	if c.ServingsPerContainer <= 0 {
		return ErrInvalidServingsPerContainer
	}
	return nil
}

// Flag is a caller-visible warning or note attached to a calculation result.
type Flag struct {
	Type       string `json:"type"`
	Ingredient string `json:"ingredient,omitempty"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
}

// Flag types raised during recipe calculation.
const (
	FlagLowConfidenceConversion = "low_confidence_conversion"
	FlagMissingNutrition        = "missing_nutrition"
	FlagNoYieldWeight           = "no_yield_weight"
)

// WorstConfidence returns the lowest confidence tier among the given
// ingredients, never a better one. Ingredients without a conversion count as
// low.
func WorstConfidence(ingredients []Ingredient) Confidence {
	if len(ingredients) == 0 {
		return ConfidenceLow
	}
	worst := ConfidenceHigh
	for _, ing := range ingredients {
		c := ing.Confidence
		if c.Rank() == 0 {
			c = ConfidenceLow
		}
		worst = worst.Worst(c)
	}
	return worst
}

// Contribution describes one ingredient's share of the combined batch: its
// fraction of the raw mass and the absolute nutrient amounts it supplies.
type Contribution struct {
	Name          string            `json:"name"`
	Grams         float64           `json:"grams"`
	WeightPercent float64           `json:"weight_percent"`
	Nutrients     nutrition.Profile `json:"nutrients,omitempty"`
}

// NutritionResult is the combined outcome of a full recipe calculation.
type NutritionResult struct {
	RecipeName       string            `json:"recipe_name"`
	Ingredients      []Ingredient      `json:"ingredients"`
	TotalRawWeightG  float64           `json:"total_raw_weight_g"`
	YieldWeightG     float64           `json:"yield_weight_g"`
	TotalNutrition   nutrition.Profile `json:"total_nutrition"`
	NutritionPer100g nutrition.Profile `json:"nutrition_per_100g"`
	Confidence       Confidence        `json:"confidence"`
	Contributions    []Contribution    `json:"contributions,omitempty"`
	Flags            []Flag            `json:"flags"`
}

var (
	ErrInvalidServingSize          = errors.New("serving size must be greater than 0")
	ErrInvalidServingsPerContainer = errors.New("servings per container must be greater than 0")
)
