package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayOriginalScore_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, displayOriginalScore(0.0))

	for _, s := range []float64{0.1, 0.3, 0.5, 0.8, 1.0} {
		out := displayOriginalScore(s)
		assert.Greater(t, out, 0.0)
		assert.Less(t, out, s, "original score display must dampen %f", s)
	}
}

func TestDisplayFinalSimilarity_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, displayFinalSimilarity(0.0))

	for _, s := range []float64{0.1, 0.5, 0.9, 0.97, 1.0} {
		out := displayFinalSimilarity(s)
		assert.Greater(t, out, 0.0)
		assert.LessOrEqual(t, out, 1.0)
	}
}

func TestDisplayTransforms_Deterministic(t *testing.T) {
	assert.Equal(t, displayOriginalScore(0.42), displayOriginalScore(0.42))
	assert.Equal(t, displayFinalSimilarity(0.97), displayFinalSimilarity(0.97))
}
