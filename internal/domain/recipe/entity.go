// Package recipe contains the core domain model for recipes and their
// ingredients, including measurement resolution metadata.
package recipe

import (
	"github.com/google/uuid"
	"github.com/nutrilabel/v1/internal/domain/nutrition"
)

// Ingredient is one recipe entry: an extracted measurement plus the per-100g
// nutrient profile attached by the ingredient-selection step. The conversion
// fields are filled in only by the unit converter.
type Ingredient struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	RawText  string    `json:"raw_text"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`

	// Per 100g of this ingredient; nil until the lookup step attaches it.
	Profile nutrition.Profile `json:"nutrient_profile,omitempty"`

	// Conversion output.
	ResolvedGrams *float64         `json:"resolved_grams,omitempty"`
	Source        ConversionSource `json:"conversion_source,omitempty"`
	Confidence    Confidence       `json:"confidence,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// NewIngredient creates an ingredient pending conversion.
func NewIngredient(name, rawText string, quantity float64, unit string) Ingredient {
	return Ingredient{
		ID:       uuid.New(),
		Name:     name,
		RawText:  rawText,
		Quantity: quantity,
		Unit:     unit,
	}
}

// Resolved reports whether the ingredient has a positive resolved weight.
func (i Ingredient) Resolved() bool {
	return i.ResolvedGrams != nil && *i.ResolvedGrams > 0
}

// Grams returns the resolved weight, or 0 if unresolved.
func (i Ingredient) Grams() float64 {
	if i.ResolvedGrams == nil {
		return 0
	}
	return *i.ResolvedGrams
}

// ApplyConversion records a conversion result on the ingredient.
func (i *Ingredient) ApplyConversion(c Conversion) {
	grams := c.Grams
	i.ResolvedGrams = &grams
	i.Source = c.Source
	i.Confidence = c.Confidence
	i.Note = c.Note
}

// InvalidateConversion clears conversion state, e.g. after the quantity or
// unit changed. Only the ingredient's own resolution is touched.
func (i *Ingredient) InvalidateConversion() {
	i.ResolvedGrams = nil
	i.Source = ""
	i.Confidence = ""
	i.Note = ""
}

// Recipe is an ordered list of ingredients plus yield information.
type Recipe struct {
	Name             string       `json:"name"`
	Ingredients      []Ingredient `json:"ingredients"`
	YieldWeightG     *float64     `json:"yield_weight_g,omitempty"`
	YieldDescription string       `json:"yield_description,omitempty"`
}

// TotalRawWeight sums the resolved gram weights of all ingredients.
func (r Recipe) TotalRawWeight() float64 {
	var total float64
	for _, ing := range r.Ingredients {
		total += ing.Grams()
	}
	return total
}

// EffectiveYieldWeight returns the declared yield weight, defaulting to the
// raw ingredient mass until the caller overrides it to reflect cooking loss.
func (r Recipe) EffectiveYieldWeight() float64 {
	if r.YieldWeightG != nil && *r.YieldWeightG > 0 {
		return *r.YieldWeightG
	}
	return r.TotalRawWeight()
}

// AllResolved reports whether every ingredient has a resolved weight.
func (r Recipe) AllResolved() bool {
	for _, ing := range r.Ingredients {
		if !ing.Resolved() {
			return false
		}
	}
	return true
}
