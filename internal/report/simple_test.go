package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hemodyn/starling/internal/model"
)

// testReport builds a fitted analysis report used across the writer tests.
func testReport() *model.AnalysisReport {
	return &model.AnalysisReport{
		Source:     "session.csv",
		AnalyzedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Samples: model.Dataset{
			{Volume: 75, Response: 2, HasResponse: true},
			{Volume: 150, Response: 5, HasResponse: true},
			{Volume: 200, Response: 8, HasResponse: true},
			{Volume: 250, Response: 9, HasResponse: true},
			{Volume: 300, Response: 9.2, HasResponse: true},
		},
		CleanCount: 5,
		Parameters: &model.FittedParameters{
			Baseline:       1.9,
			Plateau:        9.3,
			OptimalPreload: 168.4,
			Steepness:      2.1,
		},
		Summary: &model.ClinicalSummary{
			CardiacReserve:      7.4,
			Sensitivity:         model.SensitivityHigh,
			HighSensitivityNote: true,
			MoreDataRecommended: true,
			SampleCount:         5,
		},
		Curve: []model.CurvePoint{
			{Volume: 60, Response: 2.0},
			{Volume: 180, Response: 6.1},
			{Volume: 360, Response: 9.2},
		},
		Failure: model.FailureNone,
	}
}

// failedReport builds a report for a pass that produced no fit.
func failedReport(kind model.FailureKind, detail string) *model.AnalysisReport {
	return &model.AnalysisReport{
		Source:     "sparse.csv",
		AnalyzedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Samples: model.Dataset{
			{Volume: 75, Response: 2, HasResponse: true},
			{Volume: 150},
		},
		CleanCount:    1,
		Failure:       kind,
		FailureDetail: detail,
	}
}

func TestSimpleWriter_Write_fitted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewSimpleWriter(&buf).Write(testReport())
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("Write returned %d bytes, buffer holds %d", n, buf.Len())
	}

	out := buf.String()
	wantContains := []string{
		"Frank-Starling Analysis",
		"session.csv",
		"Curve Parameters",
		"Baseline (A1):        1.90 cm",
		"Plateau (A2):         9.30 cm",
		"Optimal Preload (x0): 168.4 mL",
		"Steepness (p):        2.10",
		"Clinical Interpretation",
		"Cardiac Reserve:     7.40 cm (difference between plateau and baseline)",
		"Preload Sensitivity: High (slope factor = 2.10)",
		"Advisories",
		"High preload sensitivity: the patient may benefit significantly from volume optimization.",
		"Add more data points (8+ recommended) for improved accuracy.",
	}
	for _, want := range wantContains {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	// Raw data table is omitted for successful fits unless requested.
	if strings.Contains(out, "Data\n----") {
		t.Errorf("output includes data table without WithShowSamples:\n%s", out)
	}
}

func TestSimpleWriter_Write_showSamples(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf, WithShowSamples(true)).Write(testReport()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if !strings.Contains(buf.String(), "Data\n----") {
		t.Errorf("output missing data table:\n%s", buf.String())
	}
}

func TestSimpleWriter_Write_failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kind   model.FailureKind
		detail string
		want   string
	}{
		{
			name:   "insufficient data",
			kind:   model.FailureInsufficientData,
			detail: "insufficient data: need at least 5 samples to fit the curve, have 1",
			want:   "Showing raw data points only.",
		},
		{
			name:   "degenerate data",
			kind:   model.FailureDegenerateData,
			detail: "degenerate data: all responses are identical",
			want:   "Check that response values vary across the measured volumes.",
		},
		{
			name:   "fit failed",
			kind:   model.FailureFitFailed,
			detail: "curve fitting failed: singular normal equations",
			want:   "Try adding more data points across a wider range of volumes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if _, err := NewSimpleWriter(&buf).Write(failedReport(tt.kind, tt.detail)); err != nil {
				t.Fatalf("Write returned error: %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, "No curve fitted: "+tt.detail) {
				t.Errorf("output missing failure detail:\n%s", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing remedy %q:\n%s", tt.want, out)
			}
			// A failed pass always shows the raw points.
			if !strings.Contains(out, "Data\n----") {
				t.Errorf("output missing data table:\n%s", out)
			}
			// Unmeasured responses are shown as a dash.
			if !strings.Contains(out, "-") {
				t.Errorf("output missing unmeasured marker:\n%s", out)
			}
		})
	}
}

func TestAdvisoryMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary model.ClinicalSummary
		want    int
	}{
		{name: "none", summary: model.ClinicalSummary{}, want: 0},
		{name: "all three", summary: model.ClinicalSummary{
			HighSensitivityNote: true,
			LowSensitivityNote:  true,
			MoreDataRecommended: true,
		}, want: 3},
		{name: "low note only", summary: model.ClinicalSummary{LowSensitivityNote: true}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := advisoryMessages(&tt.summary); len(got) != tt.want {
				t.Errorf("advisoryMessages returned %d messages, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&first), NewSimpleWriter(&second))

	n, err := mw.Write(testReport())
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if first.String() != second.String() {
		t.Error("writers received different output")
	}
	if n != first.Len()+second.Len() {
		t.Errorf("Write returned %d bytes, want %d", n, first.Len()+second.Len())
	}
}
