// Package config holds the runtime configuration for the starling CLI:
// defaults, validation, the optional .starling YAML file with per-dataset
// CSV options, and XDG directory helpers for the analysis history store.
package config
