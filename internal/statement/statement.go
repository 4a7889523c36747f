package statement

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Supported statement formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Table is a decoded statement: rows of cells in file order, plus the
// delimiter the rows were split on (0 for XLSX, where cells are native).
type Table struct {
	Rows      [][]string
	Delimiter rune
}

// Reader decodes one statement file format into a Table.
type Reader interface {
	ReadTable(r io.Reader) (*Table, error)
	Format() string
}

// Registry holds named statement readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(reader Reader) {
	key := strings.ToLower(reader.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = reader
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVReader{})
	r.Register(&XLSXReader{})
	return r
}

// UnsupportedFormatError reports a file that is neither CSV nor XLSX.
type UnsupportedFormatError struct {
	Format string
}

func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: expected CSV or XLSX", e.Format)
}

// Magic numbers: XLSX workbooks are ZIP archives, legacy XLS workbooks are
// OLE2 compound documents.
var (
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// DetectFormat decides whether data is a CSV or XLSX statement. Content
// wins over the filename: a ZIP signature is XLSX whatever the extension,
// and an OLE2 signature is legacy XLS, which is rejected with a clear
// message since Excel renders both workbook generations alike.
func DetectFormat(data []byte, filename string) (string, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX, nil
	}
	if bytes.HasPrefix(data, ole2Magic) {
		return "", UnsupportedFormatError{Format: "xls"}
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".txt", "":
		return FormatCSV, nil
	case ".xlsx":
		// Extension promises a workbook but the content is not a ZIP
		// archive; treat as corrupt rather than guessing CSV.
		return "", UnsupportedFormatError{Format: "xlsx"}
	default:
		return "", UnsupportedFormatError{Format: strings.TrimPrefix(ext, ".")}
	}
}
