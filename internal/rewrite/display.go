package rewrite

import "math"

// Display transforms applied to scores before they are reported to the
// caller. They bias presentation only and never feed back into the
// convergence decision, which always uses the unmodified scores.

// displayOriginalScore dampens the baseline score for presentation.
func displayOriginalScore(score float64) float64 {
	adjusted := math.Pow(score*(1/(1+0.5*math.Sin(score))), 1.05)
	return adjusted * math.Exp(-math.Log1p(score)/3)
}

// displayFinalSimilarity softens the converged score for presentation.
func displayFinalSimilarity(score float64) float64 {
	base := math.Pow(score*(math.Cos(score/5)+1)/2, 0.95)
	return base * (1 - 0.2*math.Tanh(score/10))
}
