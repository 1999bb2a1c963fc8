package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/hemodyn/starling/internal/model"
)

// markdownCurveRows caps the fitted-curve table in Markdown output.
// The full-resolution curve lives in the JSON report; a Markdown document
// only needs enough points to read the shape.
const markdownCurveRows = 11

// MarkdownWriter outputs reports in Markdown format, designed for
// documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)

	if report.Fitted() {
		w.writeParameters(md, report.Parameters)
		w.writeInterpretation(md, report)
		w.writeAdvisories(md, report.Summary)
		w.writeCurve(md, report.Curve)
	} else {
		w.writeFailure(md, report)
	}

	w.writeSamples(md, report.Samples)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and dataset information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H1("Frank-Starling Analysis Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + report.Source + "`"},
			{"Analysis Date", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Measured Samples", strconv.Itoa(report.CleanCount)},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")
}

// statusText returns the status cell based on the report outcome.
func (w *MarkdownWriter) statusText(report *model.AnalysisReport) string {
	if report.Fitted() {
		return "✅ Curve fitted"
	}
	return "⚠️ No fit - " + report.Failure.String()
}

// writeParameters writes the fitted curve parameter table.
func (w *MarkdownWriter) writeParameters(md *markdown.Markdown, p *model.FittedParameters) {
	md.H2("Curve Parameters")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Parameter", "Value", "Meaning"},
		Rows: [][]string{
			{"Baseline (A1)", fmt.Sprintf("%.2f cm", p.Baseline), "Response at minimal preload"},
			{"Plateau (A2)", fmt.Sprintf("%.2f cm", p.Plateau), "Maximum response"},
			{"Optimal Preload (x0)", fmt.Sprintf("%.1f mL", p.OptimalPreload), "Inflection volume"},
			{"Steepness (p)", fmt.Sprintf("%.2f", p.Steepness), "Sensitivity to preload changes"},
		},
	})
	md.PlainText("")
}

// writeInterpretation writes the derived clinical metrics.
func (w *MarkdownWriter) writeInterpretation(md *markdown.Markdown, report *model.AnalysisReport) {
	s := report.Summary

	md.H2("Clinical Interpretation")
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("**Cardiac Reserve**: %.2f cm (difference between plateau and baseline)", s.CardiacReserve),
		fmt.Sprintf("**Preload Sensitivity**: %s (slope factor = %.2f)", s.Sensitivity, report.Parameters.Steepness),
		fmt.Sprintf("**Optimal Volume**: %.1f mL represents the ideal preload for maximum efficiency", report.Parameters.OptimalPreload),
	)
	md.PlainText("")
}

// writeAdvisories writes GitHub-flavored alerts for the advisory flags.
func (w *MarkdownWriter) writeAdvisories(md *markdown.Markdown, s *model.ClinicalSummary) {
	if !s.HasAdvisories() {
		return
	}

	if s.HighSensitivityNote {
		md.Tip("High preload sensitivity: the patient may benefit significantly from volume optimization.")
	}
	if s.LowSensitivityNote {
		md.Warningf("Low preload sensitivity: limited responsiveness to volume changes.")
	}
	if s.MoreDataRecommended {
		md.Note(fmt.Sprintf("Add more data points (%d measured; 8+ recommended) for improved accuracy.", s.SampleCount))
	}
	md.PlainText("")
}

// writeFailure explains a failed pass with an alert matching its kind.
func (w *MarkdownWriter) writeFailure(md *markdown.Markdown, report *model.AnalysisReport) {
	switch report.Failure {
	case model.FailureInsufficientData:
		md.Warningf("No curve fitted: %s", report.FailureDetail)
	case model.FailureDegenerateData:
		md.Cautionf("No curve fitted: %s", report.FailureDetail)
	case model.FailureFitFailed:
		md.Cautionf("No curve fitted: %s. Try adding more data points across a wider range of volumes.", report.FailureDetail)
	default:
		md.Warningf("No curve fitted.")
	}
	md.PlainText("")
}

// writeCurve writes a downsampled fitted-curve table.
func (w *MarkdownWriter) writeCurve(md *markdown.Markdown, curve []model.CurvePoint) {
	if len(curve) == 0 {
		return
	}

	md.H2("Fitted Curve")
	md.PlainText("")

	stride := 1
	if len(curve) > markdownCurveRows {
		stride = (len(curve) - 1) / (markdownCurveRows - 1)
	}

	var rows [][]string
	for i := 0; i < len(curve); i += stride {
		p := curve[i]
		rows = append(rows, []string{
			fmt.Sprintf("%.1f", p.Volume),
			fmt.Sprintf("%.2f", p.Response),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Volume (mL)", "Predicted ΔVTI (cm)"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSamples writes the raw data table in its original order.
func (w *MarkdownWriter) writeSamples(md *markdown.Markdown, samples model.Dataset) {
	md.H2("Data")
	md.PlainText("")

	rows := make([][]string, len(samples))
	for i, s := range samples {
		response := "-"
		if s.HasResponse {
			response = fmt.Sprintf("%.1f", s.Response)
		}
		rows[i] = []string{fmt.Sprintf("%.0f", s.Volume), response}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Volume (mL)", "ΔVTI (cm)"},
		Rows:   rows,
	})
	md.PlainText("")
}
