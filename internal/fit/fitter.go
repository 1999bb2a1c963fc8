package fit

import (
	"fmt"
	"math"

	"github.com/hemodyn/starling/internal/model"
)

// MaxFunctionEvals is the default budget of model evaluations per fit.
// It bounds the worst-case cost of one analysis pass: the fitter is a
// blocking, CPU-bound call and this is its only stop beyond convergence.
const MaxFunctionEvals = 5000

// Optimizer tolerances and damping schedule.
const (
	// gradientTol stops the fit when the gradient of the residual sum of
	// squares is effectively zero (an unconstrained local minimum).
	gradientTol = 1e-10

	// costTol stops the fit when an accepted step no longer reduces the
	// residual sum of squares by a meaningful relative amount.
	costTol = 1e-12

	// fdStep is the relative forward-difference step for the numeric
	// Jacobian, near sqrt of float64 machine epsilon.
	fdStep = 1.5e-8

	// initialDamping seeds the Levenberg-Marquardt damping factor.
	// dampingGrow/dampingShrink adjust it after rejected/accepted steps,
	// and maxDamping is the point where no downhill step exists: the
	// current point is a (possibly bound-constrained) minimum.
	initialDamping = 1e-3
	dampingGrow    = 10.0
	dampingShrink  = 0.1
	minDamping     = 1e-12
	maxDamping     = 1e12
)

// Fitter runs bounded nonlinear least-squares fits of the logistic model.
// It is stateless and safe for concurrent use; every Fit call works on
// fresh data and performs exactly one optimization attempt, no retries.
type Fitter struct {
	// maxEvals is the model evaluation budget per fit.
	maxEvals int
}

// FitterOption configures a Fitter.
type FitterOption func(*Fitter)

// WithMaxEvals overrides the model evaluation budget.
// Values below 1 are ignored.
func WithMaxEvals(n int) FitterOption {
	return func(f *Fitter) {
		if n > 0 {
			f.maxEvals = n
		}
	}
}

// NewFitter creates a Fitter with the default evaluation budget.
func NewFitter(opts ...FitterOption) *Fitter {
	f := &Fitter{maxEvals: MaxFunctionEvals}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fit fits the 4-parameter logistic model to the given clean samples and
// returns the fitted parameters.
//
// Preconditions: len(x) == len(y), and at least MinSamples samples.
// Violating the sample threshold returns *InsufficientDataError with both
// counts. Degenerate data (see BuildFitConfig) returns
// *DegenerateDataError. Optimizer non-convergence or numerical failure
// returns *FitFailedError wrapping the diagnostic.
//
// On success the returned parameters lie within the bounds derived by
// BuildFitConfig and locally minimize the residual sum of squares; like any
// nonlinear least-squares procedure there is no global-optimality
// guarantee.
func (f *Fitter) Fit(x, y []float64) (model.FittedParameters, error) {
	if len(x) != len(y) {
		return model.FittedParameters{}, ErrLengthMismatch
	}
	if !IsFittable(len(x)) {
		return model.FittedParameters{}, &InsufficientDataError{Required: MinSamples, Actual: len(x)}
	}

	cfg, err := BuildFitConfig(x, y)
	if err != nil {
		return model.FittedParameters{}, err
	}

	params, err := f.minimize(x, y, cfg)
	if err != nil {
		return model.FittedParameters{}, err
	}

	return model.FittedParameters{
		Baseline:       params[0],
		Plateau:        params[1],
		OptimalPreload: params[2],
		Steepness:      params[3],
	}, nil
}

// minimize runs a Levenberg-Marquardt minimization of the residual sum of
// squares, seeded at cfg.Guess and with every candidate step clamped into
// [cfg.Lower, cfg.Upper]. It returns *FitFailedError on any numerical
// failure or budget exhaustion.
func (f *Fitter) minimize(x, y []float64, cfg FitConfig) ([4]float64, error) {
	p := clampParams(cfg.Guess, cfg)
	evals := 0

	// residuals evaluates the model at q against the data, charging one
	// model evaluation to the budget.
	residuals := func(q [4]float64) ([]float64, float64, error) {
		evals++
		if evals > f.maxEvals {
			return nil, 0, fmt.Errorf("evaluation budget of %d exceeded", f.maxEvals)
		}
		r := make([]float64, len(x))
		rss := 0.0
		for i := range x {
			r[i] = Logistic(x[i], q[0], q[1], q[2], q[3]) - y[i]
			if math.IsNaN(r[i]) || math.IsInf(r[i], 0) {
				return nil, 0, fmt.Errorf("non-finite residual at volume %g", x[i])
			}
			rss += r[i] * r[i]
		}
		return r, rss, nil
	}

	r, rss, err := residuals(p)
	if err != nil {
		return p, &FitFailedError{Diagnostic: "initial evaluation failed", Err: err}
	}

	damping := initialDamping

	for {
		// Numeric Jacobian by forward differences, one column per
		// parameter. The perturbation steps toward the interior when the
		// parameter sits at its upper bound so evaluation stays in-domain.
		jac := make([][4]float64, len(x))
		for k := 0; k < 4; k++ {
			h := fdStep * math.Max(math.Abs(p[k]), 1.0)
			if p[k]+h > cfg.Upper[k] {
				h = -h
			}
			q := p
			q[k] += h
			rk, _, err := residuals(q)
			if err != nil {
				return p, &FitFailedError{Diagnostic: "Jacobian evaluation failed", Err: err}
			}
			for i := range rk {
				jac[i][k] = (rk[i] - r[i]) / h
			}
		}

		// Normal matrix a = J^T*J and gradient g = J^T*r.
		var a [4][4]float64
		var g [4]float64
		for i := range jac {
			for u := 0; u < 4; u++ {
				g[u] += jac[i][u] * r[i]
				for v := u; v < 4; v++ {
					a[u][v] += jac[i][u] * jac[i][v]
				}
			}
		}
		for u := 0; u < 4; u++ {
			for v := 0; v < u; v++ {
				a[u][v] = a[v][u]
			}
		}

		if maxAbs4(g) < gradientTol {
			return p, nil
		}

		// Step search: solve the damped normal equations, growing the
		// damping factor until a step reduces the residual sum of squares.
		accepted := false
		for !accepted {
			damped := a
			for u := 0; u < 4; u++ {
				// Marquardt scaling keeps the step well-conditioned even
				// when the columns of J differ by orders of magnitude,
				// which they do here (responses in cm, volumes in mL).
				damped[u][u] = a[u][u] + damping*math.Max(a[u][u], 1e-12)
			}

			step, err := solveNormal(damped, neg4(g))
			if err != nil {
				damping *= dampingGrow
				if damping > maxDamping {
					return p, &FitFailedError{Diagnostic: "singular normal equations", Err: err}
				}
				continue
			}

			trial := p
			for u := range trial {
				trial[u] = clamp(trial[u]+step[u], cfg.Lower[u], cfg.Upper[u])
			}

			rt, rssT, err := residuals(trial)
			if err != nil {
				return p, &FitFailedError{Diagnostic: "optimization aborted", Err: err}
			}

			if rssT < rss {
				reduction := rss - rssT
				p, r = trial, rt
				rss = rssT
				damping = math.Max(damping*dampingShrink, minDamping)
				accepted = true

				if reduction <= costTol*(rss+costTol) {
					return p, nil
				}
			} else {
				damping *= dampingGrow
				if damping > maxDamping {
					// No downhill step exists even with a near-gradient
					// step: the current point is a minimum, possibly
					// pressed against an active bound.
					return p, nil
				}
			}
		}
	}
}

// clampParams clamps every parameter into the configured bounds.
func clampParams(p [4]float64, cfg FitConfig) [4]float64 {
	for i := range p {
		p[i] = clamp(p[i], cfg.Lower[i], cfg.Upper[i])
	}
	return p
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// maxAbs4 returns the infinity norm of a length-4 vector.
func maxAbs4(v [4]float64) float64 {
	m := 0.0
	for _, f := range v {
		if a := math.Abs(f); a > m {
			m = a
		}
	}
	return m
}

// neg4 negates a length-4 vector.
func neg4(v [4]float64) [4]float64 {
	for i := range v {
		v[i] = -v[i]
	}
	return v
}
