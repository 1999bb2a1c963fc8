package clinical

import "github.com/hemodyn/starling/internal/model"

// Classification thresholds on the fitted steepness parameter.
//
// The three-tier category thresholds and the advisory-note thresholds
// deliberately overlap (a steepness of 1.2 is Moderate yet still earns the
// low-sensitivity note): the category is the reporting signal, the notes
// are the actionable-recommendation signal. Both are reported; do not
// unify them.
const (
	// highSensitivityThreshold: steepness above this is categorized High.
	highSensitivityThreshold = 1.5

	// moderateSensitivityThreshold: steepness above this (and at or below
	// the high threshold) is Moderate; at or below it is Low.
	moderateSensitivityThreshold = 0.8

	// highNoteThreshold: steepness above this flags that the patient may
	// benefit significantly from volume optimization.
	highNoteThreshold = 2.0

	// lowNoteThreshold: steepness below this flags limited responsiveness
	// to volume changes.
	lowNoteThreshold = 1.0
)

// RecommendedSamples is the number of fitted samples below which the
// summary recommends collecting more data for improved accuracy.
const RecommendedSamples = 8

// ClassifySensitivity maps the fitted steepness parameter to the three-tier
// preload sensitivity category.
func ClassifySensitivity(steepness float64) model.Sensitivity {
	switch {
	case steepness > highSensitivityThreshold:
		return model.SensitivityHigh
	case steepness > moderateSensitivityThreshold:
		return model.SensitivityModerate
	default:
		return model.SensitivityLow
	}
}

// MoreDataRecommended reports whether a fit over n samples should carry the
// more-data advisory.
func MoreDataRecommended(n int) bool {
	return n < RecommendedSamples
}

// Summarize derives the clinical summary from fitted parameters and the
// number of clean samples the fit was based on.
//
// It is pure and deterministic: identical inputs always yield an identical
// summary. Cardiac reserve is not clamped; a negative reserve (plateau
// below baseline) is a valid, reportable state, not an error.
func Summarize(params model.FittedParameters, sampleCount int) model.ClinicalSummary {
	return model.ClinicalSummary{
		CardiacReserve:      params.Plateau - params.Baseline,
		Sensitivity:         ClassifySensitivity(params.Steepness),
		HighSensitivityNote: params.Steepness > highNoteThreshold,
		LowSensitivityNote:  params.Steepness < lowNoteThreshold,
		MoreDataRecommended: MoreDataRecommended(sampleCount),
		SampleCount:         sampleCount,
	}
}
