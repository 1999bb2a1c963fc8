package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hemodyn/starling/internal/config"
	"github.com/hemodyn/starling/internal/database"
	"github.com/hemodyn/starling/internal/dataset"
	"github.com/hemodyn/starling/internal/log"
	"github.com/hemodyn/starling/internal/model"
	"github.com/hemodyn/starling/internal/pipeline"
	"github.com/hemodyn/starling/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [csv-file...]",
		Short: "Fit a Frank-Starling curve to a measurement dataset",
		Long: `Analyze fits a 4-parameter logistic curve to (IV volume, ΔVTI) data.

The input is a CSV file with two required columns, "IV Volume (mL)" and
"ΔVTI (cm)". Rows with a blank response are kept for display but excluded
from fitting. At least 5 measured points are required to fit the curve;
with fewer points the raw data is reported without a fit.

Examples:
  # Analyze a single dataset
  starling analyze session.csv

  # Analyze multiple datasets concurrently
  starling analyze day1.csv day2.csv day3.csv

  # Output a Markdown report to a file
  starling analyze --markdown -o report.md session.csv

  # Use a custom configuration file
  starling analyze -c mycolumns.yaml export.csv

Configuration file (.starling) example:
  defaults:
    commaDecimal: false
  datasets:
    monitor-export.csv:
      volumeColumn: "Volume"
      responseColumn: "Delta VTI"
      commaDecimal: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses for multiple inputs")
	cmd.Flags().Int("curve-points", config.DefaultCurvePoints,
		"Number of points sampled along the fitted curve")
	cmd.Flags().Bool("no-save", false,
		"Do not record the analysis in the history database")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .starling in current or home directory)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.CurvePoints, err = cmd.Flags().GetInt("curve-points")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-dataset configurations from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Datasets, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Datasets = &config.File{
			Datasets: make(map[string]config.DatasetConfig),
		}
	}

	// Positional arguments are the dataset files.
	cfg.Inputs = args

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// All records pass through the redacting handler so patient-identifying
// attributes never reach the terminal or log files.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := log.NewRedactHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler)
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"inputs", cfg.Inputs,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open the history database if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	analyzer := pipeline.NewAnalyzer(
		pipeline.WithLogger(logger),
		pipeline.WithCurvePoints(cfg.CurvePoints),
	)

	loader := func(source string) (model.Dataset, error) {
		return dataset.ReadFile(source, datasetOptions(cfg, source))
	}

	if len(cfg.Inputs) > 1 && cfg.BatchSize > 1 {
		return runBatchAnalyze(ctx, cfg, analyzer, loader, db, logger)
	}

	return runSequentialAnalyze(ctx, cfg, analyzer, loader, db, logger)
}

// runSequentialAnalyze analyzes inputs one at a time.
func runSequentialAnalyze(ctx context.Context, cfg *config.Config, analyzer *pipeline.Analyzer, loader pipeline.DatasetLoader, db *database.HistoryDB, logger *slog.Logger) error {
	for _, input := range cfg.Inputs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ds, err := loader(input)
		if err != nil {
			logger.Error("failed to load dataset", "source", input, "error", err)
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
			continue
		}

		startTime := time.Now()
		analysisReport, err := analyzer.Analyze(ctx, input, ds)
		if err != nil {
			return err
		}
		logger.Debug("analysis pass finished",
			"source", input,
			"elapsed", time.Since(startTime).Round(time.Millisecond),
		)

		if err := outputReport(cfg, analysisReport); err != nil {
			logger.Error("report failed", "source", input, "error", err)
		}

		if err := saveAnalysisReport(ctx, db, analysisReport, logger); err != nil {
			logger.Error("failed to save analysis", "source", input, "error", err)
		}
	}

	return nil
}

// runBatchAnalyze analyzes multiple inputs concurrently using BatchProcessor.
func runBatchAnalyze(ctx context.Context, cfg *config.Config, analyzer *pipeline.Analyzer, loader pipeline.DatasetLoader, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Analyzing %d datasets (concurrency: %d)...\n\n",
		len(cfg.Inputs), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(analyzer, loader,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	_, err := bp.ProcessBatch(ctx, cfg.Inputs, func(index int, analysisReport *model.AnalysisReport, loadErr error) {
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] Error loading %s: %v\n",
				index+1, len(cfg.Inputs), cfg.Inputs[index], loadErr)
			return
		}

		fmt.Printf("[%d/%d] Analysis completed: %s\n", index+1, len(cfg.Inputs), analysisReport.Source)

		if err := outputReport(cfg, analysisReport); err != nil {
			logger.Error("report failed", "source", analysisReport.Source, "error", err)
		}

		if err := saveAnalysisReport(ctx, db, analysisReport, logger); err != nil {
			logger.Error("failed to save analysis", "source", analysisReport.Source, "error", err)
		}
	})

	fmt.Printf("\nBatch analysis completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	return err
}

// datasetOptions resolves the CSV options for one input from the config file.
func datasetOptions(cfg *config.Config, source string) dataset.Options {
	if cfg.Datasets == nil {
		return dataset.Options{}
	}

	dc := cfg.Datasets.GetDatasetConfig(source)
	return dataset.Options{
		VolumeColumn:   dc.VolumeColumn,
		ResponseColumn: dc.ResponseColumn,
		CommaDecimal:   dc.CommaDecimal,
	}
}

// outputReport outputs the analysis report in the requested format.
func outputReport(cfg *config.Config, analysisReport *model.AnalysisReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain clinical measurements; keep them owner-readable only.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report including the sampled curve)
	if cfg.JSONReport {
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(analysisReport)
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(analysisReport)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output)
	_, err := writer.Write(analysisReport)
	return err
}

// saveAnalysisReport saves the analysis to the history database if enabled.
// If db is nil, this function is a no-op.
func saveAnalysisReport(ctx context.Context, db *database.HistoryDB, analysisReport *model.AnalysisReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if _, err := db.SaveAnalysis(ctx, analysisReport); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	logger.Info("analysis saved to history", "source", analysisReport.Source)
	return nil
}
