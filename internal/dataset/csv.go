package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hemodyn/starling/internal/model"
)

// Default column headers, matching the original data-exchange format.
const (
	// VolumeColumn is the default header of the administered volume column.
	VolumeColumn = "IV Volume (mL)"

	// ResponseColumn is the default header of the measured response column.
	ResponseColumn = "ΔVTI (cm)"
)

// ErrMissingColumns is returned when the CSV header does not contain both
// required columns.
var ErrMissingColumns = errors.New("CSV must contain the volume and response columns")

// Options configures CSV reading and writing for one dataset.
// The zero value uses the default column headers and dot decimals.
type Options struct {
	// VolumeColumn overrides the volume column header. Empty means
	// VolumeColumn.
	VolumeColumn string

	// ResponseColumn overrides the response column header. Empty means
	// ResponseColumn.
	ResponseColumn string

	// CommaDecimal accepts comma decimal separators on import (e.g. "7,5").
	CommaDecimal bool
}

// columnNames returns the effective column headers.
func (o Options) columnNames() (volume, response string) {
	volume, response = o.VolumeColumn, o.ResponseColumn
	if volume == "" {
		volume = VolumeColumn
	}
	if response == "" {
		response = ResponseColumn
	}
	return volume, response
}

// Read parses a two-column CSV dataset from r. Sample order follows row
// order. Extra columns are ignored; the two required columns are located
// by header, matching case-insensitively and ignoring surrounding
// whitespace. A blank response cell yields a sample with HasResponse false.
func Read(r io.Reader, opts Options) (model.Dataset, error) {
	volumeName, responseName := opts.columnNames()

	cr := csv.NewReader(decodeReader(r))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrMissingColumns)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	volumeIdx, responseIdx := -1, -1
	for i, name := range header {
		switch {
		case headerEqual(name, volumeName):
			volumeIdx = i
		case headerEqual(name, responseName):
			responseIdx = i
		}
	}
	if volumeIdx < 0 || responseIdx < 0 {
		return nil, fmt.Errorf("%w: need %q and %q", ErrMissingColumns, volumeName, responseName)
	}

	var ds model.Dataset
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if volumeIdx >= len(record) || responseIdx >= len(record) {
			return nil, fmt.Errorf("line %d: too few columns", line)
		}

		volume, err := parseNumber(record[volumeIdx], opts.CommaDecimal)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid volume %q: %w", line, record[volumeIdx], err)
		}
		if volume < 0 {
			return nil, fmt.Errorf("line %d: volume must be non-negative, got %g", line, volume)
		}

		sample := model.Sample{Volume: volume}
		if cell := strings.TrimSpace(record[responseIdx]); cell != "" {
			response, err := parseNumber(cell, opts.CommaDecimal)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid response %q: %w", line, cell, err)
			}
			sample.Response = response
			sample.HasResponse = true
		}
		ds = append(ds, sample)
	}

	return ds, nil
}

// ReadFile reads a dataset from the CSV file at path.
func ReadFile(path string, opts Options) (model.Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dataset path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Write exports the dataset to w in the two-column CSV format, preserving
// sample order. Unmeasured responses are written as empty cells.
func Write(w io.Writer, ds model.Dataset, opts Options) error {
	volumeName, responseName := opts.columnNames()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{volumeName, responseName}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range ds {
		response := ""
		if s.HasResponse {
			response = strconv.FormatFloat(s.Response, 'f', -1, 64)
		}
		record := []string{strconv.FormatFloat(s.Volume, 'f', -1, 64), response}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile exports the dataset to a CSV file at path.
func WriteFile(path string, ds model.Dataset, opts Options) error {
	f, err := os.Create(path) //nolint:gosec // User-provided export path is intentional
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}

	if err := Write(f, ds, opts); err != nil {
		_ = f.Close() //nolint:errcheck // Write error takes precedence
		return err
	}
	return f.Close()
}

// DefaultDataset returns the starter data-entry template: the standard
// volume loading steps with responses left unmeasured.
func DefaultDataset() model.Dataset {
	return model.Dataset{
		{Volume: 75},
		{Volume: 150},
		{Volume: 200},
		{Volume: 250},
		{Volume: 300},
	}
}

// headerEqual compares a CSV header cell against the expected column name,
// ignoring case and surrounding whitespace.
func headerEqual(cell, name string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), strings.TrimSpace(name))
}

// parseNumber parses a float, optionally accepting a comma decimal
// separator.
func parseNumber(s string, commaDecimal bool) (float64, error) {
	s = strings.TrimSpace(s)
	if commaDecimal {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
