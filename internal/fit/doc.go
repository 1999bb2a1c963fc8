// Package fit implements the 4-parameter logistic curve model and the
// bounded nonlinear least-squares procedure that fits it to preload/response
// measurements.
//
// The fitting pipeline is: SufficiencyGate (IsFittable) decides whether a
// fit should be attempted at all, BuildFitConfig derives the initial guess
// and parameter bounds from the observed data, and Fitter runs a damped
// Gauss-Newton (Levenberg-Marquardt) minimization of the residual sum of
// squares with steps clamped to the bounds.
//
// Every component is stateless: each call receives fresh input slices and
// returns fresh, independently-owned values. Failures are reported through
// the typed errors in this package (InsufficientDataError,
// DegenerateDataError, FitFailedError) so callers can distinguish them with
// errors.As; the fitter never substitutes a guessed or partial result for a
// failed fit.
package fit
