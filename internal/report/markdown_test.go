package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hemodyn/starling/internal/model"
)

func TestMarkdownWriter_Write_fitted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(testReport()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	out := buf.String()
	wantContains := []string{
		"# Frank-Starling Analysis Report",
		"## Curve Parameters",
		"## Clinical Interpretation",
		"## Fitted Curve",
		"## Data",
		"`session.csv`",
		"1.90 cm",
		"9.30 cm",
		"168.4 mL",
		"**Cardiac Reserve**: 7.40 cm",
		"[!TIP]",
		"[!NOTE]",
	}
	for _, want := range wantContains {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestMarkdownWriter_Write_failure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		kind      model.FailureKind
		wantAlert string
	}{
		{name: "insufficient data uses warning", kind: model.FailureInsufficientData, wantAlert: "[!WARNING]"},
		{name: "degenerate data uses caution", kind: model.FailureDegenerateData, wantAlert: "[!CAUTION]"},
		{name: "fit failure uses caution", kind: model.FailureFitFailed, wantAlert: "[!CAUTION]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if _, err := NewMarkdownWriter(&buf).Write(failedReport(tt.kind, "diagnostic")); err != nil {
				t.Fatalf("Write returned error: %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, tt.wantAlert) {
				t.Errorf("output missing alert %q:\n%s", tt.wantAlert, out)
			}
			if strings.Contains(out, "## Curve Parameters") {
				t.Errorf("failed report includes parameter table:\n%s", out)
			}
			// Raw points are still reported.
			if !strings.Contains(out, "## Data") {
				t.Errorf("output missing data table:\n%s", out)
			}
		})
	}
}

func TestMarkdownWriter_Write_downsamplesCurve(t *testing.T) {
	t.Parallel()

	report := testReport()
	report.Curve = make([]model.CurvePoint, 200)
	for i := range report.Curve {
		report.Curve[i] = model.CurvePoint{Volume: float64(60 + i), Response: float64(i) / 25}
	}

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	// Count the rows of the fitted-curve table: lines between the Fitted
	// Curve and Data sections that look like table rows, minus header and
	// separator.
	out := buf.String()
	section := out[strings.Index(out, "## Fitted Curve"):strings.Index(out, "## Data")]
	rows := 0
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, "|") && !strings.Contains(line, "---") && !strings.Contains(line, "Volume") {
			rows++
		}
	}
	if rows > markdownCurveRows+1 {
		t.Errorf("curve table has %d rows, want at most %d", rows, markdownCurveRows+1)
	}
	if rows < 2 {
		t.Errorf("curve table has %d rows, want at least 2", rows)
	}
}
