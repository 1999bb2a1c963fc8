package model

// FittedParameters holds the four parameters of a fitted Frank-Starling
// logistic curve. The value is produced once per successful fit and is
// immutable; downstream consumers (clinical summary, reports, storage)
// read it but never modify it.
type FittedParameters struct {
	// Baseline (A1) is the response at minimal preload.
	Baseline float64 `json:"baseline"`

	// Plateau (A2) is the maximum response the curve levels off at.
	Plateau float64 `json:"plateau"`

	// OptimalPreload (x0) is the inflection volume in mL, the preload at
	// the curve's steepest point.
	OptimalPreload float64 `json:"optimalPreload"`

	// Steepness (p) is the logistic shape parameter controlling how sharp
	// the transition is around the inflection volume.
	Steepness float64 `json:"steepness"`
}
