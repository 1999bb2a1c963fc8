package model

// Sensitivity represents the preload sensitivity category derived from the
// fitted steepness parameter. It classifies how strongly the patient's
// response changes with volume loading.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Sensitivity int

const (
	// SensitivityLow indicates limited responsiveness to volume changes
	// (steepness at or below the moderate threshold).
	SensitivityLow Sensitivity = iota

	// SensitivityModerate indicates typical responsiveness to volume loading.
	SensitivityModerate

	// SensitivityHigh indicates a strong response to small volume changes
	// (steepness above the high threshold).
	SensitivityHigh
)

// String returns a human-readable representation of the sensitivity category.
func (s Sensitivity) String() string {
	switch s {
	case SensitivityLow:
		return "Low"
	case SensitivityModerate:
		return "Moderate"
	case SensitivityHigh:
		return "High"
	default:
		return "Unknown"
	}
}
