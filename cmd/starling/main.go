// Package main provides the entry point for the starling CLI.
//
// starling fits a 4-parameter logistic (Frank-Starling) curve to
// preload/response measurements and derives clinical metrics from the fit.
//
// Usage:
//
//	starling analyze <csv-file>
//	starling analyze --markdown session1.csv session2.csv
//
// See --help for all available options.
package main

// main is the entry point for starling.
func main() {
	Execute()
}
