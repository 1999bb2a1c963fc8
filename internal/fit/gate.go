package fit

// MinSamples is the minimum number of clean samples required before a curve
// fit is attempted. With fewer points the 4-parameter model is
// underdetermined and the optimizer chases noise.
//
// This constant is shared by Fitter.Fit's precondition and by callers'
// branching logic (show raw data versus fit) so the two never disagree.
const MinSamples = 5

// IsFittable reports whether n clean samples are enough to attempt a fit.
func IsFittable(n int) bool {
	return n >= MinSamples
}
