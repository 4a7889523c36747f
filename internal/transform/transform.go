package transform

import (
	"strings"

	"github.com/actual-tools/intesa2actual/internal/model"
)

// Source column names as they appear in Intesa SanPaolo exports.
const (
	ColumnDate   = "Data"
	ColumnPayee  = "Operazione"
	ColumnNotes  = "Dettagli"
	ColumnAmount = "Importo"
)

// Columns holds the resolved position of each required source column in the
// header row.
type Columns struct {
	Date   int
	Payee  int
	Notes  int
	Amount int
}

// Max returns the highest resolved position. A data row must extend past it
// to be extractable.
func (c Columns) Max() int {
	m := c.Date
	for _, i := range []int{c.Payee, c.Notes, c.Amount} {
		if i > m {
			m = i
		}
	}
	return m
}

// LocateHeader scans rows from the top and returns the index of the first
// row whose trimmed, case-folded non-empty cells include all four source
// column names. Returns ErrHeaderNotFound if no row matches.
func LocateHeader(rows [][]string) (int, error) {
	for i, row := range rows {
		if isHeaderRow(row) {
			return i, nil
		}
	}
	return 0, ErrHeaderNotFound
}

func isHeaderRow(row []string) bool {
	cells := make(map[string]bool, len(row))
	for _, cell := range row {
		if name := normalize(cell); name != "" {
			cells[name] = true
		}
	}
	for _, name := range []string{ColumnDate, ColumnPayee, ColumnNotes, ColumnAmount} {
		if !cells[normalize(name)] {
			return false
		}
	}
	return true
}

// ResolveColumns maps each required source column name to its position in
// the header row. Positions are independent of physical order, so reordered
// or extra columns ("Conto", "Valuta") do not shift the mapping. Returns
// MissingColumnError if a required column is absent.
func ResolveColumns(header []string) (Columns, error) {
	find := func(name string) (int, bool) {
		want := normalize(name)
		for i, cell := range header {
			if normalize(cell) == want {
				return i, true
			}
		}
		return 0, false
	}

	var cols Columns
	for _, f := range []struct {
		name string
		pos  *int
	}{
		{ColumnDate, &cols.Date},
		{ColumnPayee, &cols.Payee},
		{ColumnNotes, &cols.Notes},
		{ColumnAmount, &cols.Amount},
	} {
		i, ok := find(f.name)
		if !ok {
			return Columns{}, MissingColumnError{Column: f.name}
		}
		*f.pos = i
	}
	return cols, nil
}

// ExtractRecords reads the rows after the header row into Transactions.
// Cell values pass through verbatim. Blank rows are skipped silently. Rows
// shorter than the highest resolved position are skipped and their 1-based
// row numbers returned, or abort with MalformedRowError when strict is set.
//
// When the amount column is the last header column and a row carries more
// cells than the header, the surplus cells are rejoined with delim: a
// comma-decimal amount like "-25,50" splits in two under a comma-delimited
// parse, and the tail join restores it. Empty cells at the end of the row
// stay out of the join, so exports that pad every row with a trailing
// delimiter keep their amounts intact. Pass delim 0 to disable (XLSX rows
// were never split by a delimiter).
func ExtractRecords(rows [][]string, headerIdx int, cols Columns, delim rune, strict bool) ([]model.Transaction, []int, error) {
	headerWidth := len(rows[headerIdx])
	maxIdx := cols.Max()

	var txns []model.Transaction
	var skipped []int
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1

		if isBlankRow(row) {
			continue
		}

		if len(row) <= maxIdx {
			if strict {
				return nil, nil, MalformedRowError{Row: rowNum}
			}
			skipped = append(skipped, rowNum)
			continue
		}

		amount := row[cols.Amount]
		if delim != 0 && cols.Amount == headerWidth-1 && len(row) > headerWidth {
			tail := row[cols.Amount:]
			for len(tail) > 1 && strings.TrimSpace(tail[len(tail)-1]) == "" {
				tail = tail[:len(tail)-1]
			}
			amount = strings.Join(tail, string(delim))
		}

		txns = append(txns, model.Transaction{
			Date:   row[cols.Date],
			Payee:  row[cols.Payee],
			Notes:  row[cols.Notes],
			Amount: amount,
			Row:    rowNum,
		})
	}
	return txns, skipped, nil
}

// ToOutputRecords maps Transactions to OutputRecords, injecting the account
// label and the empty Category/Split_Amount/Cleared fields. Dates and
// amounts are carried over untouched.
func ToOutputRecords(txns []model.Transaction, account string) []model.OutputRecord {
	var records []model.OutputRecord
	for _, txn := range txns {
		records = append(records, model.OutputRecord{
			Date:    txn.Date,
			Payee:   txn.Payee,
			Notes:   txn.Notes,
			Amount:  txn.Amount,
			Account: account,
		})
	}
	return records
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normalize(cell string) string {
	return strings.ToLower(strings.TrimSpace(cell))
}
