package fit

import (
	"math"
	"sort"
)

// Bound derivation constants. The widened baseline/plateau bounds let the
// optimizer explore beyond the sampled response extremes; the inflection
// volume stays within a decade below the minimum volume and double the
// maximum; steepness is held to a physiologically sane range.
const (
	// initialSteepness seeds the steepness parameter at a neutral slope.
	initialSteepness = 1.0

	// minSteepness and maxSteepness bound the steepness parameter.
	minSteepness = 0.1
	maxSteepness = 10.0

	// inflectionLowerFactor and inflectionUpperFactor bound the inflection
	// volume relative to the observed volume range.
	inflectionLowerFactor = 0.1
	inflectionUpperFactor = 2.0
)

// FitConfig holds the initial guess and parameter bounds for one fit
// invocation, in parameter order [baseline, plateau, inflection volume,
// steepness]. BuildFitConfig guarantees Lower[i] <= Guess[i] <= Upper[i]
// for every i.
type FitConfig struct {
	Guess [4]float64
	Lower [4]float64
	Upper [4]float64
}

// BuildFitConfig derives the initial guess and bounds from observed data:
//
//	guess = [min(y), max(y), median(x), 1.0]
//	lower = [min(y)-spread, min(y)-spread, 0.1*min(x), 0.1]
//	upper = [max(y)+spread, max(y)+spread, 2*max(x),   10]
//
// where spread = |max(y) - min(y)|.
//
// It requires len(x) == len(y) >= 1 and returns a *DegenerateDataError when
// the data cannot yield a valid configuration: all responses identical
// (spread zero collapses the baseline/plateau bounds to a point) or a
// non-positive minimum volume (the lower bound on the inflection volume
// must stay strictly positive for the logistic model to be defined).
func BuildFitConfig(x, y []float64) (FitConfig, error) {
	if len(x) != len(y) {
		return FitConfig{}, ErrLengthMismatch
	}
	if len(x) == 0 {
		return FitConfig{}, &DegenerateDataError{Reason: "no samples"}
	}

	minX, maxX := minMax(x)
	minY, maxY := minMax(y)
	spread := math.Abs(maxY - minY)

	if spread == 0 {
		return FitConfig{}, &DegenerateDataError{
			Reason: "all responses are identical; baseline and plateau bounds collapse",
		}
	}
	if minX <= 0 {
		return FitConfig{}, &DegenerateDataError{
			Reason: "volumes must be strictly positive to bound the inflection volume",
		}
	}

	cfg := FitConfig{
		Guess: [4]float64{minY, maxY, median(x), initialSteepness},
		Lower: [4]float64{minY - spread, minY - spread, inflectionLowerFactor * minX, minSteepness},
		Upper: [4]float64{maxY + spread, maxY + spread, inflectionUpperFactor * maxX, maxSteepness},
	}

	// The derivation above keeps the invariant for any non-degenerate input;
	// this check catches the cases it cannot resolve rather than handing the
	// optimizer an invalid ordering.
	for i := range cfg.Guess {
		if cfg.Lower[i] > cfg.Guess[i] || cfg.Guess[i] > cfg.Upper[i] {
			return FitConfig{}, &DegenerateDataError{
				Reason: "bounds do not enclose the initial guess",
			}
		}
	}

	return cfg, nil
}

// minMax returns the minimum and maximum of a non-empty slice.
func minMax(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, f := range v[1:] {
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	return lo, hi
}

// median returns the median of a non-empty slice, averaging the two middle
// values for even lengths. The input is not modified.
func median(v []float64) float64 {
	sorted := make([]float64, len(v))
	copy(sorted, v)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
