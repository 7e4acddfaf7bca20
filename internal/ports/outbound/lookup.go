// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces the calculation core uses to reach external systems
package outbound

import (
	"context"
	"time"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
)

// FoodRecord is the result of a food-database lookup.
type FoodRecord struct {
	Description string
	// Per 100g of the matched food.
	Profile nutrition.Profile
	// Declared serving weight of the matched record, 0 if none.
	TypicalServingGrams float64
	Matched             bool
}

// FoodLookup is the external food-database contract. Implementations own any
// caching and must be safe for concurrent reads.
type FoodLookup interface {
	Lookup(ctx context.Context, foodName string) (FoodRecord, error)
}

// MatchQuality describes how an ingredient name matched a density table entry.
type MatchQuality string

const (
	MatchExact MatchQuality = "exact"
	MatchFuzzy MatchQuality = "fuzzy"
	// MatchApproximate marks a generic density assumption rather than a
	// real table entry, e.g. water density for an unknown liquid.
	MatchApproximate MatchQuality = "approximate"
)

// DensityResult is one resolved (ingredient, unit) density.
type DensityResult struct {
	GramsPerUnit float64
	Match        MatchQuality
	// Note carries caveats worth surfacing to the caller, e.g. which
	// assumption an approximate match rests on.
	Note string
}

// DensityEntry describes one ingredient's volume-to-weight data.
type DensityEntry struct {
	Name  string
	Units map[string]float64
	Notes string
}

// DensityTable is the curated ingredient conversion-table contract: a static
// or cached mapping of (ingredient, unit) to grams per unit.
type DensityTable interface {
	// Density returns grams per unit for the ingredient and unit, with the
	// quality of the name match. ok is false when no entry applies.
	Density(ingredientName, unit string) (result DensityResult, ok bool)
	// Entries lists all ingredients with conversion data, sorted by name.
	Entries() []DensityEntry
}

// CacheRepository is a byte-oriented cache used by lookup adapters.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
