package model

// ClinicalSummary holds the derived clinical metrics for a fitted
// Frank-Starling curve. It is recomputed fresh from FittedParameters on
// every analysis pass and never persisted by the analysis core itself.
//
// The three-tier Sensitivity category and the two advisory notes are
// intentionally separate, overlapping signals: the category is for
// reporting, the notes drive actionable recommendations. They use
// different thresholds and must not be unified.
type ClinicalSummary struct {
	// CardiacReserve is plateau minus baseline (A2 - A1) in cm, a measure
	// of physiological capacity. It is not clamped: a negative reserve is
	// a valid, reportable state when the fit yields A2 < A1.
	CardiacReserve float64 `json:"cardiacReserve"`

	// Sensitivity is the three-tier preload sensitivity category derived
	// from the steepness parameter.
	Sensitivity Sensitivity `json:"sensitivity"`

	// HighSensitivityNote is set when steepness exceeds 2.0: the patient
	// may benefit significantly from volume optimization.
	HighSensitivityNote bool `json:"highSensitivityNote"`

	// LowSensitivityNote is set when steepness is below 1.0: limited
	// responsiveness to volume changes.
	LowSensitivityNote bool `json:"lowSensitivityNote"`

	// MoreDataRecommended is set when fewer than the recommended number of
	// samples were fitted; more points improve accuracy.
	MoreDataRecommended bool `json:"moreDataRecommended"`

	// SampleCount is the number of clean samples the fit was based on.
	SampleCount int `json:"sampleCount"`
}

// HasAdvisories reports whether any advisory flag is set.
func (c ClinicalSummary) HasAdvisories() bool {
	return c.HighSensitivityNote || c.LowSensitivityNote || c.MoreDataRecommended
}
