package converter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/actual-tools/intesa2actual/internal/actual"
	"github.com/actual-tools/intesa2actual/internal/model"
	"github.com/actual-tools/intesa2actual/internal/statement"
	"github.com/actual-tools/intesa2actual/internal/transform"
)

// Options controls a single conversion. The zero value sniffs the format,
// detects the CSV delimiter, skips malformed rows, and labels records with
// the default account.
type Options struct {
	Format    string // "csv" or "xlsx"; empty means detect from content
	Delimiter rune   // CSV cell separator; 0 means detect
	Strict    bool   // abort on the first malformed row
	Account   string // Account column label; empty means actual.DefaultAccount
}

// Result is the outcome of one conversion.
type Result struct {
	Records   []model.OutputRecord
	HeaderRow int // 1-based row number of the detected header row
	Columns   transform.Columns
	Skipped   []int // 1-based row numbers of skipped malformed rows
}

// Convert decodes a statement file and transforms it into Actual Budget
// records. All failures are deterministic for a given input; nothing is
// retried.
func Convert(data []byte, filename string, opts Options) (*Result, error) {
	format := opts.Format
	if format == "" {
		detected, err := statement.DetectFormat(data, filename)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	reader, err := readerFor(format, opts.Delimiter)
	if err != nil {
		return nil, err
	}

	table, err := reader.ReadTable(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	headerIdx, err := transform.LocateHeader(table.Rows)
	if err != nil {
		return nil, err
	}

	cols, err := transform.ResolveColumns(table.Rows[headerIdx])
	if err != nil {
		return nil, err
	}

	txns, skipped, err := transform.ExtractRecords(table.Rows, headerIdx, cols, table.Delimiter, opts.Strict)
	if err != nil {
		return nil, err
	}

	account := opts.Account
	if account == "" {
		account = actual.DefaultAccount
	}

	return &Result{
		Records:   transform.ToOutputRecords(txns, account),
		HeaderRow: headerIdx + 1,
		Columns:   cols,
		Skipped:   skipped,
	}, nil
}

// ConvertFile reads a statement from disk and converts it.
func ConvertFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Convert(data, filepath.Base(path), opts)
}

// WriteCSV serializes the conversion result as the Actual import CSV.
func (r *Result) WriteCSV(w io.Writer) error {
	return actual.WriteRecords(w, r.Records)
}

// readerFor returns the statement reader for format, honoring a CSV
// delimiter override. Unknown formats fail as unsupported.
func readerFor(format string, delim rune) (statement.Reader, error) {
	if delim != 0 && strings.EqualFold(format, statement.FormatCSV) {
		return &statement.CSVReader{Delimiter: delim}, nil
	}
	if r := statement.DefaultRegistry().Get(format); r != nil {
		return r, nil
	}
	return nil, statement.UnsupportedFormatError{Format: format}
}
