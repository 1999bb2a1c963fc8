package dataset

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeReader wraps r so that a leading byte order mark selects the
// decoding transparently: UTF-8 BOMs are stripped and UTF-16 (either
// endianness) is converted to UTF-8. Input without a BOM passes through
// unchanged.
//
// Spreadsheet applications used in clinical settings commonly export CSV
// as UTF-16 with a BOM; without this the header match on the ΔVTI column
// silently fails.
func decodeReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
