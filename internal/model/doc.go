// Package model defines the data types shared across starling:
// preload/response samples, fitted logistic curve parameters, clinical
// summaries derived from them, and the analysis report that ties a single
// analysis pass together.
//
// All types in this package are plain values with no behavior beyond
// derivation helpers. They carry no mutable shared state; every analysis
// pass produces fresh instances.
package model
