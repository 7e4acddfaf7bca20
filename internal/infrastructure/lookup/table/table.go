// Package table provides the curated ingredient density table used by the
// conversion-table tier of measurement resolution.
package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nutrilabel/v1/internal/ports/outbound"
)

// Table resolves (ingredient, unit) pairs against the curated volume-to-
// weight data. It is immutable after construction and safe for concurrent
// use.
type Table struct {
	entries       map[string]entry
	aliases       map[string]string
	aliasKeys     []string
	entryKeys     []string
	waterFallback bool
}

// Option configures a Table.
type Option func(*Table)

// WithWaterFallback makes the table answer any volume unit of an unknown
// ingredient with a water-density assumption instead of passing the miss to
// the next conversion tier.
func WithWaterFallback() Option {
	return func(t *Table) { t.waterFallback = true }
}

// New returns the table backed by the built-in data set.
func New(opts ...Option) *Table {
	t := &Table{entries: volumeToGrams, aliases: ingredientAliases}
	t.aliasKeys = sortedKeys(t.aliases)
	t.entryKeys = sortedEntryKeys(t.entries)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedEntryKeys(m map[string]entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ outbound.DensityTable = (*Table)(nil)

// Density resolves grams per unit for an ingredient and canonical unit.
// Resolution order: pinch/dash fixed weights, the matched entry's explicit
// unit weights, the entry's density for other volume units, and finally a
// water-density assumption for any volume unit of an unknown ingredient.
func (t *Table) Density(ingredientName, unit string) (outbound.DensityResult, bool) {
	// Pinch and dash are so small the ingredient hardly matters.
	switch unit {
	case "pinch":
		return outbound.DensityResult{
			GramsPerUnit: pinchGrams,
			Match:        outbound.MatchApproximate,
			Note:         "Pinch estimated as ~1/16 tsp",
		}, true
	case "dash":
		return outbound.DensityResult{
			GramsPerUnit: dashGrams,
			Match:        outbound.MatchApproximate,
			Note:         "Dash estimated as ~1/8 tsp",
		}, true
	}

	canonical, match, found := t.match(ingredientName)
	if found {
		e := t.entries[canonical]

		if grams, ok := e.units[unit]; ok {
			return outbound.DensityResult{GramsPerUnit: grams, Match: match, Note: t.fuzzyNote(match, ingredientName, canonical)}, true
		}

		// Size-specific counts fall back to the generic whole weight.
		if isCountSize(unit) {
			if grams, ok := e.units["whole"]; ok {
				return outbound.DensityResult{GramsPerUnit: grams, Match: match, Note: t.fuzzyNote(match, ingredientName, canonical)}, true
			}
		}

		if e.densityGPerML > 0 {
			if ml, ok := mlPerUnit[unit]; ok {
				return outbound.DensityResult{
					GramsPerUnit: ml * e.densityGPerML,
					Match:        match,
					Note:         "Converted using density",
				}, true
			}
		}
	}

	// Unknown ingredient in a volume unit: assume water-like density.
	// Most food ingredients fall between 0.5 and 1.5 g/ml.
	if ml, ok := mlPerUnit[unit]; ok && t.waterFallback {
		return outbound.DensityResult{
			GramsPerUnit: ml * 1.0,
			Match:        outbound.MatchApproximate,
			Note:         "Estimated using water density (1.0 g/ml). Adjust if needed.",
		}, true
	}

	return outbound.DensityResult{}, false
}

// Entries lists all ingredients with conversion data, sorted by name.
func (t *Table) Entries() []outbound.DensityEntry {
	out := make([]outbound.DensityEntry, 0, len(t.entries))
	for name, e := range t.entries {
		units := make(map[string]float64, len(e.units))
		for u, g := range e.units {
			units[u] = g
		}
		out = append(out, outbound.DensityEntry{Name: name, Units: units, Notes: e.notes})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NormalizeName maps a free-form ingredient name to its canonical table
// form, stripping preparation descriptors and applying aliases. Names with
// no table presence pass through cleaned.
func (t *Table) NormalizeName(name string) string {
	canonical, _, found := t.match(name)
	if found {
		return canonical
	}
	return stripDescriptors(name)
}

// match resolves a free-form name to a canonical entry key.
func (t *Table) match(name string) (string, outbound.MatchQuality, bool) {
	normalized := stripDescriptors(name)

	if canonical, ok := t.aliases[normalized]; ok {
		return canonical, outbound.MatchExact, true
	}
	if _, ok := t.entries[normalized]; ok {
		return normalized, outbound.MatchExact, true
	}

	// Partial matching: an alias contained in the name or vice versa. Keys
	// are scanned in sorted order so ambiguous names resolve the same way
	// on every run.
	for _, alias := range t.aliasKeys {
		if strings.Contains(normalized, alias) || strings.Contains(alias, normalized) {
			return t.aliases[alias], outbound.MatchFuzzy, true
		}
	}
	for _, key := range t.entryKeys {
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return key, outbound.MatchFuzzy, true
		}
	}

	return "", "", false
}

func (t *Table) fuzzyNote(match outbound.MatchQuality, original, canonical string) string {
	if match != outbound.MatchFuzzy {
		return ""
	}
	return fmt.Sprintf("Matched %q to %q by partial name", original, canonical)
}

func stripDescriptors(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, desc := range descriptorsToRemove {
		normalized = strings.ReplaceAll(normalized, ", "+desc, "")
		normalized = strings.ReplaceAll(normalized, " "+desc, "")
	}
	return strings.TrimSpace(normalized)
}

func isCountSize(unit string) bool {
	switch unit {
	case "whole", "large", "medium", "small":
		return true
	}
	return false
}
