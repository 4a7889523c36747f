package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CSVReader decodes semicolon- or comma-delimited statement exports. The
// bank's portal produces semicolon-delimited Windows-1252 files, but
// comma-delimited UTF-8 variants circulate; both decode transparently.
type CSVReader struct {
	// Delimiter forces the cell separator. Zero means detect it from the
	// leading bytes.
	Delimiter rune
}

// Format returns the reader name.
func (cr *CSVReader) Format() string { return FormatCSV }

// ReadTable decodes a CSV statement into a Table. The byte stream is
// normalized first (BOM stripped, Windows-1252 transcoded to UTF-8 when the
// input is not valid UTF-8), then parsed with relaxed quoting and variable
// field counts so short or long rows reach the transform, which owns the
// malformed-row policy.
func (cr *CSVReader) ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}

	data, err = normalizeEncoding(data)
	if err != nil {
		return nil, err
	}

	delim := cr.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(data)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	return &Table{Rows: rows, Delimiter: delim}, nil
}

// delimiterSampleSize bounds how many leading bytes DetectDelimiter counts.
const delimiterSampleSize = 4096

// DetectDelimiter picks ';' or ',' by counting occurrences in the leading
// bytes. Semicolon wins ties: the bank's own exports are semicolon
// delimited and use the comma as decimal separator.
func DetectDelimiter(data []byte) rune {
	sample := data
	if len(sample) > delimiterSampleSize {
		sample = sample[:delimiterSampleSize]
	}
	if bytes.Count(sample, []byte{';'}) >= bytes.Count(sample, []byte{','}) {
		return ';'
	}
	return ','
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeEncoding strips a UTF-8 BOM and transcodes Windows-1252 bytes
// (a superset of Latin-1, the bank's legacy export encoding) when the data
// is not already valid UTF-8.
func normalizeEncoding(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding Windows-1252: %w", err)
	}
	return decoded, nil
}
