package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hemodyn/starling/internal/config"
	"github.com/hemodyn/starling/internal/database"
	"github.com/hemodyn/starling/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [source]",
		Short: "List stored analyses or show the latest one for a source",
		Long: `History queries the local analysis database.

Without arguments it lists recent analyses across all sources. With a
source argument it lists the analyses recorded for that dataset; add
--latest to print the most recent full report instead.

Examples:
  # List recent analyses
  starling history

  # List analyses of one dataset
  starling history session.csv

  # Show the latest full report for a dataset
  starling history --latest session.csv

  # Show the latest full report as JSON
  starling history --latest --json session.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of analyses to list")
	cmd.Flags().BoolP("latest", "l", false, "Show the latest full report for the given source")
	cmd.Flags().BoolP("json", "j", false, "Output the latest report as JSON (requires --latest)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	latest, err := cmd.Flags().GetBool("latest")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if latest && len(args) == 0 {
		return fmt.Errorf("--latest requires a source argument")
	}

	// The history database must already exist; history never creates one.
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no analysis history yet (run 'starling analyze' first): %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if latest {
		return showLatest(ctx, cmd, db, args[0], asJSON)
	}

	var records []database.AnalysisRecord
	if len(args) == 1 {
		records, err = db.ListAnalysesBySource(ctx, args[0], limit)
	} else {
		records, err = db.ListAnalyses(ctx, limit)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored analyses.")
		return nil
	}

	return printRecords(cmd, records)
}

// showLatest prints the most recent full report for a source.
func showLatest(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, source string, asJSON bool) error {
	analysisReport, err := db.LatestAnalysis(ctx, source)
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(analysisReport)
	}

	writer := report.NewSimpleWriter(cmd.OutOrStdout())
	_, err = writer.Write(analysisReport)
	return err
}

// printRecords writes a table of stored analyses.
func printRecords(cmd *cobra.Command, records []database.AnalysisRecord) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSOURCE\tSAMPLES\tRESERVE\tX0\tSENSITIVITY\tSTATUS")

	for _, rec := range records {
		reserve, x0, sensitivity := "-", "-", "-"
		status := rec.Failure
		if rec.Fitted {
			reserve = fmt.Sprintf("%.2f", rec.CardiacReserve)
			x0 = fmt.Sprintf("%.1f", rec.OptimalPreload)
			sensitivity = rec.Sensitivity
			status = "fitted"
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			rec.AnalyzedAt.Local().Format("2006-01-02 15:04"),
			rec.Source,
			rec.SampleCount,
			reserve, x0, sensitivity, status,
		)
	}

	return tw.Flush()
}
