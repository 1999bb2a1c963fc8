package report

import (
	"io"

	"github.com/hemodyn/starling/internal/model"
)

// Writer defines the interface for report output.
// Implementations render an analysis report in a specific format.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or buffers with
// the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.AnalysisReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers and stops on the
// first error encountered.
func (m *MultiWriter) Write(report *model.AnalysisReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// advisoryMessages returns the human-readable advisory lines for a summary,
// in a stable order.
func advisoryMessages(s *model.ClinicalSummary) []string {
	var msgs []string
	if s.HighSensitivityNote {
		msgs = append(msgs, "High preload sensitivity: the patient may benefit significantly from volume optimization.")
	}
	if s.LowSensitivityNote {
		msgs = append(msgs, "Low preload sensitivity: limited responsiveness to volume changes.")
	}
	if s.MoreDataRecommended {
		msgs = append(msgs, "Add more data points (8+ recommended) for improved accuracy.")
	}
	return msgs
}
