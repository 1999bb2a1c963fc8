package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hemodyn/starling/internal/clinical"
	"github.com/hemodyn/starling/internal/fit"
	"github.com/hemodyn/starling/internal/model"
)

// Curve sampling range relative to the measured volumes. The fitted curve
// is rendered slightly beyond the data so the baseline and plateau are
// visible.
const (
	curveRangeLowerFactor = 0.8
	curveRangeUpperFactor = 1.2
)

// Analyzer runs complete analysis passes. It owns no mutable state between
// calls and is safe for concurrent use; every pass works on the dataset it
// is handed and returns a fresh report.
type Analyzer struct {
	// fitter performs the bounded nonlinear least-squares fit.
	fitter *fit.Fitter

	// curvePoints is the number of points sampled along the fitted curve.
	curvePoints int

	// logger is used for structured logging during analysis.
	logger *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets a custom logger for the analyzer.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithCurvePoints sets the number of points sampled along the fitted curve.
// Values below 2 are ignored.
func WithCurvePoints(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n >= 2 {
			a.curvePoints = n
		}
	}
}

// WithFitter sets a custom fitter, e.g. with a reduced evaluation budget.
func WithFitter(f *fit.Fitter) AnalyzerOption {
	return func(a *Analyzer) {
		if f != nil {
			a.fitter = f
		}
	}
}

// NewAnalyzer creates an Analyzer with default settings: the standard
// fitter and a 200-point curve.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		fitter:      fit.NewFitter(),
		curvePoints: 200,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Analyze runs one analysis pass over the dataset and returns its report.
// The error return is reserved for context cancellation; data problems
// (too few samples, degenerate data, non-convergence) are classified in
// the report's Failure field so callers can present each kind distinctly.
func (a *Analyzer) Analyze(ctx context.Context, source string, ds model.Dataset) (*model.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := model.NewAnalysisReport(source)
	report.Samples = ds

	// The clean subset is derived fresh on every pass; the dataset may
	// have been edited since the last one.
	x, y := ds.Clean()
	report.CleanCount = len(x)

	if !fit.IsFittable(len(x)) {
		insufficient := &fit.InsufficientDataError{Required: fit.MinSamples, Actual: len(x)}
		report.Failure = model.FailureInsufficientData
		report.FailureDetail = insufficient.Error()
		a.logger.Info("skipping fit, showing raw data only",
			"source", source,
			"samples", len(x),
			"required", fit.MinSamples,
		)
		return report, nil
	}

	params, err := a.fitter.Fit(x, y)
	if err != nil {
		report.Failure, report.FailureDetail = classifyFitError(err)
		a.logger.Warn("curve fit did not produce parameters",
			"source", source,
			"kind", report.Failure,
			"detail", report.FailureDetail,
		)
		return report, nil
	}

	summary := clinical.Summarize(params, len(x))
	report.Parameters = &params
	report.Summary = &summary
	report.Curve = a.sampleCurve(x, params)

	a.logger.Info("analysis complete",
		"source", source,
		"samples", len(x),
		"optimalPreload", params.OptimalPreload,
		"sensitivity", summary.Sensitivity,
	)

	return report, nil
}

// classifyFitError maps the fit package's typed errors onto the report's
// failure kinds, preserving the three-way distinction for the caller.
func classifyFitError(err error) (model.FailureKind, string) {
	var insufficient *fit.InsufficientDataError
	if errors.As(err, &insufficient) {
		return model.FailureInsufficientData, insufficient.Error()
	}

	var degenerate *fit.DegenerateDataError
	if errors.As(err, &degenerate) {
		return model.FailureDegenerateData, degenerate.Error()
	}

	var failed *fit.FitFailedError
	if errors.As(err, &failed) {
		return model.FailureFitFailed, failed.Error()
	}

	return model.FailureFitFailed, err.Error()
}

// sampleCurve evaluates the fitted curve over a range slightly wider than
// the measured volumes, returning curvePoints evenly spaced points.
func (a *Analyzer) sampleCurve(x []float64, params model.FittedParameters) []model.CurvePoint {
	minX, maxX := x[0], x[0]
	for _, v := range x[1:] {
		if v < minX {
			minX = v
		}
		if v > maxX {
			maxX = v
		}
	}

	lo := curveRangeLowerFactor * minX
	hi := curveRangeUpperFactor * maxX
	step := (hi - lo) / float64(a.curvePoints-1)

	curve := make([]model.CurvePoint, a.curvePoints)
	for i := range curve {
		volume := lo + float64(i)*step
		curve[i] = model.CurvePoint{
			Volume:   volume,
			Response: fit.Logistic(volume, params.Baseline, params.Plateau, params.OptimalPreload, params.Steepness),
		}
	}
	return curve
}
