package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_UnknownIsNotZero(t *testing.T) {
	p := NewProfile()
	p.Set(Calories, 100)

	_, ok := p.Get(SodiumMg)
	assert.False(t, ok)
	assert.False(t, p.Has(SodiumMg))

	// A known zero is distinct from unknown.
	p.Set(ProteinG, 0)
	v, ok := p.Get(ProteinG)
	require.True(t, ok)
	assert.Zero(t, v)
}

func TestProfile_SetIgnoresUntrackedKeys(t *testing.T) {
	p := NewProfile()
	p.Set(Nutrient("caffeine_mg"), 95)
	assert.True(t, p.IsEmpty())
}

func TestProfile_Scale(t *testing.T) {
	p := Profile{Calories: 100, SodiumMg: 50}

	scaled := p.Scale(2.5)
	assert.InDelta(t, 250.0, scaled[Calories], 1e-9)
	assert.InDelta(t, 125.0, scaled[SodiumMg], 1e-9)
	assert.False(t, scaled.Has(ProteinG))

	// Original is untouched.
	assert.InDelta(t, 100.0, p[Calories], 1e-9)
}

func TestProfile_AddWeighted(t *testing.T) {
	totals := NewProfile()
	totals.AddWeighted(Profile{Calories: 100, ProteinG: 10}, 200)
	totals.AddWeighted(Profile{Calories: 50}, 100)

	assert.InDelta(t, 250.0, totals[Calories], 1e-9)
	assert.InDelta(t, 20.0, totals[ProteinG], 1e-9)
	// The second profile did not report protein, so nothing was added and
	// nothing was zeroed.
	assert.True(t, totals.Has(ProteinG))
	assert.False(t, totals.Has(SodiumMg))
}

func TestProfile_Clone(t *testing.T) {
	p := Profile{Calories: 100}
	c := p.Clone()
	c[Calories] = 999

	assert.InDelta(t, 100.0, p[Calories], 1e-9)

	var nilProfile Profile
	assert.Nil(t, nilProfile.Clone())
}
