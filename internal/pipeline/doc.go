// Package pipeline orchestrates one analysis pass over a dataset: derive
// the clean subset, gate on sample count, fit the logistic curve, summarize
// the fitted parameters, and sample the fitted curve for display. A batch
// processor runs the same pass concurrently over multiple datasets.
//
// The pipeline records fit failures in the report rather than returning
// them as errors: a dataset that cannot be fitted is still a valid analysis
// result (the raw points are shown), not a process failure. Only context
// cancellation aborts a pass.
package pipeline
