package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no dataset file is specified.
	ErrNoInput = errors.New("no input specified: provide one or more CSV dataset files")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no analyses run at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidCurvePoints is returned when fewer than two curve points
	// are requested; a curve needs at least its two endpoints.
	ErrInvalidCurvePoints = errors.New("invalid curve points: must be at least 2")
)
