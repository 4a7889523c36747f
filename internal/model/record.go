package model

// Transaction is one statement row after header alignment. All fields hold
// the source cell text verbatim; dates and amounts are never reparsed or
// reformatted on the way through.
type Transaction struct {
	Date   string
	Payee  string
	Notes  string
	Amount string
	Row    int // 1-based row number in the source file
}

// OutputRecord is one row of the Actual Budget import CSV.
type OutputRecord struct {
	Date        string
	Payee       string
	Notes       string
	Amount      string
	Account     string
	Category    string // always empty
	SplitAmount string // always empty
	Cleared     string // always empty
}
