package converter

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/actual-tools/intesa2actual/internal/model"
)

// Summary aggregates converted records for inspection: how many debits and
// credits, and their totals. Conversion itself never parses amounts; this
// is a read-only diagnostic over the verbatim values.
type Summary struct {
	Credits     int
	Debits      int
	CreditTotal decimal.Decimal
	DebitTotal  decimal.Decimal
	Unparsed    int
}

// Summarize totals the records' amounts per sign. Values that do not parse
// as amounts are counted and otherwise ignored; inspection accepts whatever
// conversion accepts.
func Summarize(records []model.OutputRecord) Summary {
	var s Summary
	for _, rec := range records {
		amt, err := ParseAmount(rec.Amount)
		if err != nil {
			s.Unparsed++
			continue
		}
		if amt.IsNegative() {
			s.Debits++
			s.DebitTotal = s.DebitTotal.Add(amt)
		} else {
			s.Credits++
			s.CreditTotal = s.CreditTotal.Add(amt)
		}
	}
	return s
}

// ParseAmount parses an Italian-formatted amount ("1.234,56", "-25,50")
// into a decimal. A comma marks the Italian convention: dots are thousands
// separators and drop out. Without a comma the value parses as-is, covering
// exports already in dot-decimal form.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "€", ""))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
