package model

import "time"

// FailureKind classifies why an analysis pass did not produce fitted
// parameters. Callers (CLI, reports) use it to choose an appropriate
// message and remedy; the analysis core never substitutes a partial or
// guessed result for a failed fit.
type FailureKind int

const (
	// FailureNone means the analysis completed with a successful fit.
	FailureNone FailureKind = iota

	// FailureInsufficientData means fewer clean samples were available than
	// the fitting threshold requires. Recoverable by collecting more data.
	FailureInsufficientData

	// FailureDegenerateData means the observed data could not produce a
	// valid fit configuration (for example, all responses identical).
	FailureDegenerateData

	// FailureFitFailed means the optimizer did not converge or hit a
	// numerical singularity within its evaluation budget.
	FailureFitFailed
)

// String returns a human-readable representation of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInsufficientData:
		return "insufficient-data"
	case FailureDegenerateData:
		return "degenerate-data"
	case FailureFitFailed:
		return "fit-failed"
	default:
		return "unknown"
	}
}

// CurvePoint is a single point on the sampled fitted curve, used to render
// the smooth curve alongside the raw measurements.
type CurvePoint struct {
	Volume   float64 `json:"volume"`
	Response float64 `json:"response"`
}

// AnalysisReport is the complete result of one analysis pass over a dataset.
// It always carries the raw samples (so insufficient data can still be
// displayed as a scatter of points); parameters, summary, and curve are only
// present when the fit succeeded.
type AnalysisReport struct {
	// Source identifies where the dataset came from, typically a file path.
	Source string `json:"source"`

	// AnalyzedAt is when the analysis pass ran.
	AnalyzedAt time.Time `json:"analyzedAt"`

	// Samples is the raw dataset in its original order.
	Samples Dataset `json:"samples"`

	// CleanCount is the number of samples with a measured response.
	CleanCount int `json:"cleanCount"`

	// Parameters holds the fitted curve parameters, nil unless the fit
	// succeeded.
	Parameters *FittedParameters `json:"parameters,omitempty"`

	// Summary holds the derived clinical metrics, nil unless the fit
	// succeeded.
	Summary *ClinicalSummary `json:"summary,omitempty"`

	// Curve is the fitted curve sampled over the measured volume range,
	// empty unless the fit succeeded.
	Curve []CurvePoint `json:"curve,omitempty"`

	// Failure classifies why no parameters were produced; FailureNone on
	// success.
	Failure FailureKind `json:"failure"`

	// FailureDetail is the human-readable diagnostic for a failed pass.
	FailureDetail string `json:"failureDetail,omitempty"`
}

// NewAnalysisReport creates an empty report for the given source with the
// analysis timestamp set to now.
func NewAnalysisReport(source string) *AnalysisReport {
	return &AnalysisReport{
		Source:     source,
		AnalyzedAt: time.Now(),
	}
}

// Fitted reports whether the analysis produced fitted parameters.
func (r *AnalysisReport) Fitted() bool {
	return r.Parameters != nil
}
