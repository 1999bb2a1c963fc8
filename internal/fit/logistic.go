package fit

import (
	"math"

	"github.com/hemodyn/starling/internal/model"
)

// Logistic evaluates the 4-parameter logistic model:
//
//	y = a2 + (a1 - a2) / (1 + (x/x0)^p)
//
// a1 is the baseline response, a2 the plateau, x0 the inflection volume,
// and p the steepness. The function is pure and total for x > 0 and
// x0 != 0.
//
// Callers are responsible for the domain: x0 == 0 divides by zero, and a
// negative x/x0 raised to a non-integer power yields NaN. In practice x
// values are volumes (non-negative) and BuildFitConfig keeps the lower
// bound on x0 strictly positive, so fitted evaluation stays in-domain.
func Logistic(x, a1, a2, x0, p float64) float64 {
	return a2 + (a1-a2)/(1+math.Pow(x/x0, p))
}

// LogisticCurve evaluates the logistic model elementwise over xs using the
// given fitted parameters, returning a fresh slice of the same length.
func LogisticCurve(xs []float64, params model.FittedParameters) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = Logistic(x, params.Baseline, params.Plateau, params.OptimalPreload, params.Steepness)
	}
	return ys
}
