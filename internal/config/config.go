package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultCurvePoints is the number of points sampled along the fitted
	// curve for display and export. 200 gives a smooth curve at typical
	// terminal/report widths without bloating stored reports.
	DefaultCurvePoints = 200

	// DefaultBatchSize is the number of datasets analyzed concurrently when
	// multiple CSV files are given. Fits are CPU-bound and finish in
	// milliseconds, so a small limit keeps output ordering readable without
	// costing throughput.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "starling"
)

// Config holds all configuration options for one starling invocation.
// It is populated from CLI flags and passed through the application by
// dependency injection rather than global state.
type Config struct {
	// Inputs is the list of CSV dataset files to analyze.
	// At least one is required.
	Inputs []string

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written there instead of stdout; directories
	// are created as needed.
	ReportFile string

	// BatchSize is the number of datasets analyzed concurrently when more
	// than one input is given.
	BatchSize int

	// CurvePoints is the number of points sampled along the fitted curve.
	CurvePoints int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .starling in the current directory and then in the
	// user's home directory.
	ConfigFilePath string

	// Datasets holds per-dataset CSV options loaded from the config file.
	Datasets *File

	// SaveToDB indicates whether to save analysis results to the history
	// database.
	SaveToDB bool

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BatchSize:   DefaultBatchSize,
		CurvePoints: DefaultCurvePoints,
		SaveToDB:    true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for starling.
// On Linux: ~/.local/share/starling
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for starling.
// On Linux: ~/.config/starling
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid, returning a specific
// sentinel error for the first problem found. It is called once after CLI
// parsing, before any analysis begins, so problems surface with clear
// messages upfront.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.CurvePoints < 2 {
		return ErrInvalidCurvePoints
	}
	return nil
}
