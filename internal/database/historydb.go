package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hemodyn/starling/internal/model"
)

// HistoryDB stores completed analysis reports in a single SQLite file.
// It manages connection pooling and provides methods for saving and
// querying past analyses.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "starling.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to forbid creating new files and
	// mode=rwc to allow it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent batch saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
// Frequently-queried fit results get their own columns; the complete
// report is kept as JSON for faithful re-display.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		analyzed_at DATETIME NOT NULL,
		sample_count INTEGER NOT NULL,
		fitted INTEGER NOT NULL,
		baseline REAL,
		plateau REAL,
		optimal_preload REAL,
		steepness REAL,
		cardiac_reserve REAL,
		sensitivity TEXT,
		failure TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_source ON analyses(source);
	CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// AnalysisRecord is a stored analysis row as returned by list queries.
// Fit result fields are only meaningful when Fitted is true.
type AnalysisRecord struct {
	ID             int64
	Source         string
	AnalyzedAt     time.Time
	SampleCount    int
	Fitted         bool
	Baseline       float64
	Plateau        float64
	OptimalPreload float64
	Steepness      float64
	CardiacReserve float64
	Sensitivity    string
	Failure        string
}

// SaveAnalysis stores a completed analysis report and returns its row ID.
func (hdb *HistoryDB) SaveAnalysis(ctx context.Context, report *model.AnalysisReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	var (
		baseline, plateau, optimalPreload, steepness, cardiacReserve sql.NullFloat64
		sensitivity                                                  sql.NullString
	)
	if report.Fitted() {
		baseline = sql.NullFloat64{Float64: report.Parameters.Baseline, Valid: true}
		plateau = sql.NullFloat64{Float64: report.Parameters.Plateau, Valid: true}
		optimalPreload = sql.NullFloat64{Float64: report.Parameters.OptimalPreload, Valid: true}
		steepness = sql.NullFloat64{Float64: report.Parameters.Steepness, Valid: true}
	}
	if report.Summary != nil {
		cardiacReserve = sql.NullFloat64{Float64: report.Summary.CardiacReserve, Valid: true}
		sensitivity = sql.NullString{String: report.Summary.Sensitivity.String(), Valid: true}
	}

	query := `
	INSERT INTO analyses (
		source, analyzed_at, sample_count, fitted,
		baseline, plateau, optimal_preload, steepness,
		cardiac_reserve, sensitivity, failure, report_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := hdb.db.ExecContext(ctx, query,
		report.Source,
		report.AnalyzedAt.UTC(),
		report.CleanCount,
		report.Fitted(),
		baseline, plateau, optimalPreload, steepness,
		cardiacReserve, sensitivity,
		report.Failure.String(),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis: %w", err)
	}

	return result.LastInsertId()
}

// ListAnalyses returns the most recent analyses, newest first, up to limit.
// A limit of 0 uses a default of 50.
func (hdb *HistoryDB) ListAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, source, analyzed_at, sample_count, fitted,
	       baseline, plateau, optimal_preload, steepness,
	       cardiac_reserve, sensitivity, failure
	FROM analyses
	ORDER BY analyzed_at DESC, id DESC
	LIMIT ?`

	rows, err := hdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only query

	var records []AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysisRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListAnalysesBySource returns the stored analyses for one source, newest
// first, up to limit. A limit of 0 uses a default of 50.
func (hdb *HistoryDB) ListAnalysesBySource(ctx context.Context, source string, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, source, analyzed_at, sample_count, fitted,
	       baseline, plateau, optimal_preload, steepness,
	       cardiac_reserve, sensitivity, failure
	FROM analyses
	WHERE source = ?
	ORDER BY analyzed_at DESC, id DESC
	LIMIT ?`

	rows, err := hdb.db.QueryContext(ctx, query, source, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only query

	var records []AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysisRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestAnalysis returns the most recent full report for a source, or
// sql.ErrNoRows wrapped in a descriptive error when none is stored.
func (hdb *HistoryDB) LatestAnalysis(ctx context.Context, source string) (*model.AnalysisReport, error) {
	query := `
	SELECT report_json
	FROM analyses
	WHERE source = ?
	ORDER BY analyzed_at DESC, id DESC
	LIMIT 1`

	var reportJSON string
	if err := hdb.db.QueryRowContext(ctx, query, source).Scan(&reportJSON); err != nil {
		return nil, fmt.Errorf("no stored analysis for %s: %w", source, err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to deserialize stored report: %w", err)
	}
	return &report, nil
}

// scanAnalysisRecord scans one row of the list queries.
func scanAnalysisRecord(rows *sql.Rows) (AnalysisRecord, error) {
	var (
		rec                                                          AnalysisRecord
		baseline, plateau, optimalPreload, steepness, cardiacReserve sql.NullFloat64
		sensitivity                                                  sql.NullString
	)

	if err := rows.Scan(
		&rec.ID, &rec.Source, &rec.AnalyzedAt, &rec.SampleCount, &rec.Fitted,
		&baseline, &plateau, &optimalPreload, &steepness,
		&cardiacReserve, &sensitivity, &rec.Failure,
	); err != nil {
		return AnalysisRecord{}, fmt.Errorf("failed to scan analysis row: %w", err)
	}

	rec.Baseline = baseline.Float64
	rec.Plateau = plateau.Float64
	rec.OptimalPreload = optimalPreload.Float64
	rec.Steepness = steepness.Float64
	rec.CardiacReserve = cardiacReserve.Float64
	rec.Sensitivity = sensitivity.String
	return rec, nil
}
