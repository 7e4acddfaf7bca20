package nutrition

// Profile is a nutrient profile per 100 grams of whatever entity it is
// attached to: an ingredient profile is per 100g of that ingredient, a
// recipe-level profile is per 100g of the combined recipe.
//
// A key absent from the map is unknown, which is not the same as zero.
// Aggregation must never coerce unknown values to 0.
type Profile map[Nutrient]float64

// NewProfile returns an empty profile.
func NewProfile() Profile {
	return make(Profile)
}

// Get returns the amount for a nutrient and whether it is known.
func (p Profile) Get(n Nutrient) (float64, bool) {
	v, ok := p[n]
	return v, ok
}

// Set records an amount for a nutrient. Unrecognized keys are ignored.
func (p Profile) Set(n Nutrient, amount float64) {
	if !IsTracked(n) {
		return
	}
	p[n] = amount
}

// Has reports whether the nutrient has a known value.
func (p Profile) Has(n Nutrient) bool {
	_, ok := p[n]
	return ok
}

// Clone returns an independent copy of the profile.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Scale returns a new profile with every known value multiplied by factor.
// Unknown keys stay unknown.
func (p Profile) Scale(factor float64) Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v * factor
	}
	return out
}

// AddWeighted accumulates another per-100g profile into p, weighted by the
// contributing mass in grams. Each known value contributes its absolute
// nutrient mass (per-100g value * grams/100); keys unknown on other are
// skipped rather than treated as zero.
func (p Profile) AddWeighted(other Profile, grams float64) {
	factor := grams / 100.0
	for k, v := range other {
		if !IsTracked(k) {
			continue
		}
		p[k] += v * factor
	}
}

// IsEmpty reports whether the profile has no known values.
func (p Profile) IsEmpty() bool {
	return len(p) == 0
}
