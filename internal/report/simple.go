package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hemodyn/starling/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showSamples includes the raw data table even for successful fits.
	showSamples bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowSamples configures the writer to always include the raw data
// table. The table is shown regardless of this option when no fit was
// produced, since the raw points are then the only result.
func WithShowSamples(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showSamples = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AnalysisReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)

	if report.Fitted() {
		w.writeParameters(&sb, report.Parameters)
		w.writeInterpretation(&sb, report)
		w.writeAdvisories(&sb, report.Summary)
		if w.showSamples {
			w.writeSamples(&sb, report.Samples)
		}
	} else {
		w.writeFailure(&sb, report)
		w.writeSamples(&sb, report.Samples)
	}

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report title and dataset information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AnalysisReport) {
	fmt.Fprintf(sb, "Frank-Starling Analysis\n")
	fmt.Fprintf(sb, "=======================\n")
	fmt.Fprintf(sb, "Source:  %s\n", report.Source)
	fmt.Fprintf(sb, "Date:    %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Samples: %d measured of %d rows\n\n", report.CleanCount, len(report.Samples))
}

// writeParameters writes the fitted curve parameters.
func (w *SimpleWriter) writeParameters(sb *strings.Builder, p *model.FittedParameters) {
	fmt.Fprintf(sb, "Curve Parameters\n")
	fmt.Fprintf(sb, "----------------\n")
	fmt.Fprintf(sb, "  Baseline (A1):        %.2f cm\n", p.Baseline)
	fmt.Fprintf(sb, "  Plateau (A2):         %.2f cm\n", p.Plateau)
	fmt.Fprintf(sb, "  Optimal Preload (x0): %.1f mL\n", p.OptimalPreload)
	fmt.Fprintf(sb, "  Steepness (p):        %.2f\n\n", p.Steepness)
}

// writeInterpretation writes the derived clinical metrics.
func (w *SimpleWriter) writeInterpretation(sb *strings.Builder, report *model.AnalysisReport) {
	s := report.Summary
	fmt.Fprintf(sb, "Clinical Interpretation\n")
	fmt.Fprintf(sb, "-----------------------\n")
	fmt.Fprintf(sb, "  Cardiac Reserve:     %.2f cm (difference between plateau and baseline)\n", s.CardiacReserve)
	fmt.Fprintf(sb, "  Preload Sensitivity: %s (slope factor = %.2f)\n", s.Sensitivity, report.Parameters.Steepness)
	fmt.Fprintf(sb, "  Optimal Volume:      %.1f mL represents the ideal preload for maximum efficiency\n\n",
		report.Parameters.OptimalPreload)
}

// writeAdvisories writes the advisory flags, if any are set.
func (w *SimpleWriter) writeAdvisories(sb *strings.Builder, s *model.ClinicalSummary) {
	msgs := advisoryMessages(s)
	if len(msgs) == 0 {
		return
	}

	fmt.Fprintf(sb, "Advisories\n")
	fmt.Fprintf(sb, "----------\n")
	for _, msg := range msgs {
		fmt.Fprintf(sb, "  - %s\n", msg)
	}
	fmt.Fprintf(sb, "\n")
}

// writeFailure explains why no fit was produced and suggests a remedy.
func (w *SimpleWriter) writeFailure(sb *strings.Builder, report *model.AnalysisReport) {
	switch report.Failure {
	case model.FailureInsufficientData:
		fmt.Fprintf(sb, "No curve fitted: %s\n", report.FailureDetail)
		fmt.Fprintf(sb, "Showing raw data points only.\n\n")
	case model.FailureDegenerateData:
		fmt.Fprintf(sb, "No curve fitted: %s\n", report.FailureDetail)
		fmt.Fprintf(sb, "Check that response values vary across the measured volumes.\n\n")
	case model.FailureFitFailed:
		fmt.Fprintf(sb, "No curve fitted: %s\n", report.FailureDetail)
		fmt.Fprintf(sb, "Try adding more data points across a wider range of volumes.\n\n")
	default:
		fmt.Fprintf(sb, "No curve fitted.\n\n")
	}
}

// writeSamples writes the raw data table in its original order.
func (w *SimpleWriter) writeSamples(sb *strings.Builder, samples model.Dataset) {
	fmt.Fprintf(sb, "Data\n")
	fmt.Fprintf(sb, "----\n")
	fmt.Fprintf(sb, "  %-16s %s\n", "Volume (mL)", "ΔVTI (cm)")
	for _, s := range samples {
		response := "-"
		if s.HasResponse {
			response = fmt.Sprintf("%.1f", s.Response)
		}
		fmt.Fprintf(sb, "  %-16.0f %s\n", s.Volume, response)
	}
	fmt.Fprintf(sb, "\n")
}
