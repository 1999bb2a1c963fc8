package fit

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when the volume and response slices passed
// to a fit have different lengths. This indicates a programming error in
// the caller, not a data problem; dataset cleaning always produces
// equal-length slices.
var ErrLengthMismatch = errors.New("volume and response slices must have the same length")

// InsufficientDataError is returned when fewer clean samples are available
// than MinSamples requires. It carries both counts so callers can tell the
// user exactly how many more points are needed. Recoverable: collect more
// data and re-run.
type InsufficientDataError struct {
	// Required is the minimum number of samples needed (MinSamples).
	Required int

	// Actual is the number of clean samples that were provided.
	Actual int
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need at least %d samples to fit the curve, have %d", e.Required, e.Actual)
}

// DegenerateDataError is returned when the observed data cannot produce a
// valid fit configuration, for example when all responses are identical so
// the baseline/plateau bounds collapse, or when a non-positive volume would
// break the strictly-positive lower bound on the inflection volume. It is
// signaled before any optimization is attempted.
type DegenerateDataError struct {
	// Reason describes what about the data is degenerate.
	Reason string
}

// Error implements the error interface.
func (e *DegenerateDataError) Error() string {
	return "degenerate data: " + e.Reason
}

// FitFailedError is returned when the optimizer fails to converge within
// its evaluation budget or encounters a numerical singularity. It wraps the
// underlying diagnostic so low-level numerical errors never escape raw.
// Recoverable: more or better-distributed data usually resolves it.
type FitFailedError struct {
	// Diagnostic describes the failure in optimizer terms.
	Diagnostic string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FitFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("curve fitting failed: %s: %v", e.Diagnostic, e.Err)
	}
	return "curve fitting failed: " + e.Diagnostic
}

// Unwrap returns the underlying cause for use with errors.Is and errors.As.
func (e *FitFailedError) Unwrap() error {
	return e.Err
}
