package actual

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/actual-tools/intesa2actual/internal/model"
)

// Header is the CSV header for the import file. Actual Budget matches
// columns by these exact names.
const Header = "Date,Payee,Notes,Amount,Account,Category,Split_Amount,Cleared"

// DefaultAccount labels every imported transaction unless overridden.
const DefaultAccount = "Intesa SanPaolo"

const (
	numFields      = 8
	colDate        = 0
	colPayee       = 1
	colNotes       = 2
	colAmount      = 3
	colAccount     = 4
	colCategory    = 5
	colSplitAmount = 6
	colCleared     = 7
)

// WriteRecords writes the import CSV (header plus one row per record).
// Standard quoting applies: a comma-decimal amount like -25,50 comes out
// quoted, with the cell value untouched.
func WriteRecords(w io.Writer, records []model.OutputRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts an OutputRecord to a CSV row ([]string).
func MarshalRecord(rec model.OutputRecord) []string {
	row := make([]string, numFields)
	row[colDate] = rec.Date
	row[colPayee] = rec.Payee
	row[colNotes] = rec.Notes
	row[colAmount] = rec.Amount
	row[colAccount] = rec.Account
	row[colCategory] = rec.Category
	row[colSplitAmount] = rec.SplitAmount
	row[colCleared] = rec.Cleared
	return row
}

// ConvertedName derives the output filename for a converted statement:
// "movimenti.xlsx" becomes "movimenti_converted.csv".
func ConvertedName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "statement"
	}
	return base + "_converted.csv"
}
