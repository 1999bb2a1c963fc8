package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// newTestLogger returns a logger writing through a RedactHandler into buf.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	inner := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewRedactHandler(inner))
}

func TestRedactHandler_masksIdentifyingKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{name: "patient", key: "patient"},
		{name: "patient id", key: "patient_id"},
		{name: "medical record number", key: "mrn"},
		{name: "date of birth", key: "dob"},
		{name: "case insensitive", key: "Patient_Name"},
		{name: "accession number", key: "accession"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newTestLogger(&buf)
			logger.Info("analysis complete", tt.key, "John Doe")

			out := buf.String()
			if strings.Contains(out, "John Doe") {
				t.Errorf("identifying value leaked into log output: %s", out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("log output missing mask: %s", out)
			}
		})
	}
}

func TestRedactHandler_passesOtherKeysThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	logger.Info("fit complete", "source", "session.csv", "samples", 5)

	out := buf.String()
	if !strings.Contains(out, "session.csv") {
		t.Errorf("non-identifying value was dropped: %s", out)
	}
	if strings.Contains(out, MaskValue) {
		t.Errorf("non-identifying value was masked: %s", out)
	}
}

func TestRedactHandler_redactsInsideGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	logger.Info("saved", slog.Group("record", slog.String("patient", "Jane Doe"), slog.Int("samples", 5)))

	out := buf.String()
	if strings.Contains(out, "Jane Doe") {
		t.Errorf("identifying value inside group leaked: %s", out)
	}
	if !strings.Contains(out, "samples=5") {
		t.Errorf("non-identifying group attribute was dropped: %s", out)
	}
}

func TestRedactHandler_withAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf).With("patient", "Jane Doe", "source", "session.csv")
	logger.Info("analysis complete")

	out := buf.String()
	if strings.Contains(out, "Jane Doe") {
		t.Errorf("identifying value from With leaked: %s", out)
	}
	if !strings.Contains(out, "session.csv") {
		t.Errorf("non-identifying value from With was dropped: %s", out)
	}
}

func TestRedactHandler_withGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf).WithGroup("analysis")
	logger.Info("done", "patient_id", "12345", "curve_points", 200)

	out := buf.String()
	if strings.Contains(out, "12345") {
		t.Errorf("identifying value inside WithGroup leaked: %s", out)
	}
}

func TestNewRedactHandler_nilWrapsDefault(t *testing.T) {
	t.Parallel()

	h := NewRedactHandler(nil)
	if h == nil {
		t.Fatal("NewRedactHandler(nil) = nil")
	}
}
