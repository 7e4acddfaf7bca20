package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence_Worst(t *testing.T) {
	assert.Equal(t, ConfidenceMedium, ConfidenceHigh.Worst(ConfidenceMedium))
	assert.Equal(t, ConfidenceLow, ConfidenceMedium.Worst(ConfidenceLow))
	assert.Equal(t, ConfidenceHigh, ConfidenceHigh.Worst(ConfidenceHigh))
	// Worst never improves a tier.
	assert.Equal(t, ConfidenceLow, ConfidenceLow.Worst(ConfidenceHigh))
}

func TestWorstConfidence(t *testing.T) {
	high := Ingredient{Confidence: ConfidenceHigh}
	medium := Ingredient{Confidence: ConfidenceMedium}
	low := Ingredient{Confidence: ConfidenceLow}

	assert.Equal(t, ConfidenceHigh, WorstConfidence([]Ingredient{high, high}))
	assert.Equal(t, ConfidenceMedium, WorstConfidence([]Ingredient{high, medium}))
	assert.Equal(t, ConfidenceLow, WorstConfidence([]Ingredient{high, medium, low}))
}

func TestWorstConfidence_UnresolvedCountsAsLow(t *testing.T) {
	pending := Ingredient{} // no conversion applied yet
	assert.Equal(t, ConfidenceLow, WorstConfidence([]Ingredient{{Confidence: ConfidenceHigh}, pending}))
	assert.Equal(t, ConfidenceLow, WorstConfidence(nil))
}

func TestServingConfig_Validate(t *testing.T) {
	valid := ServingConfig{ServingSizeG: 55, ServingsPerContainer: 4}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, ServingConfig{ServingSizeG: 0, ServingsPerContainer: 4}.Validate(), ErrInvalidServingSize)
	assert.ErrorIs(t, ServingConfig{ServingSizeG: -10, ServingsPerContainer: 4}.Validate(), ErrInvalidServingSize)
	assert.ErrorIs(t, ServingConfig{ServingSizeG: 55, ServingsPerContainer: 0}.Validate(), ErrInvalidServingsPerContainer)
}
