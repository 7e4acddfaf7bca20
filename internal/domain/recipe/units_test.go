package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitTable_NormalizeAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"g", "g"},
		{"grams", "g"},
		{"Grams", "g"},
		{"  KG ", "kg"},
		{"lbs", "lb"},
		{"pound", "lb"},
		{"Cups", "cup"},
		{"c.", "cup"},
		{"tablespoons", "tbsp"},
		{"tbs", "tbsp"},
		{"teaspoon", "tsp"},
		{"fl oz", "fl_oz"},
		{"fluid ounces", "fl_oz"},
		{"each", "whole"},
		{"cloves", "clove"},
		// Unknown units pass through unchanged.
		{"handful", "handful"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultUnits.Normalize(tt.in), "unit %q", tt.in)
	}
}

func TestUnitTable_Class(t *testing.T) {
	class, ok := DefaultUnits.Class("g")
	assert.True(t, ok)
	assert.Equal(t, UnitClassWeight, class)

	class, ok = DefaultUnits.Class("cup")
	assert.True(t, ok)
	assert.Equal(t, UnitClassVolume, class)

	class, ok = DefaultUnits.Class("clove")
	assert.True(t, ok)
	assert.Equal(t, UnitClassCount, class)

	_, ok = DefaultUnits.Class("handful")
	assert.False(t, ok)
}

func TestUnitTable_WeightFactors(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultUnits.GramsPerUnit["g"], 1e-9)
	assert.InDelta(t, 1000.0, DefaultUnits.GramsPerUnit["kg"], 1e-9)
	assert.InDelta(t, 28.35, DefaultUnits.GramsPerUnit["oz"], 1e-9)
	assert.InDelta(t, 453.6, DefaultUnits.GramsPerUnit["lb"], 1e-9)
}
