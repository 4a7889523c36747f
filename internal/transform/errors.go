package transform

import (
	"errors"
	"fmt"
)

// ErrHeaderNotFound reports that no row in the input matched the expected
// column signature, meaning the file is not a recognizable statement export.
var ErrHeaderNotFound = errors.New("header row not found")

// MissingColumnError reports a required source column absent from a header
// row that otherwise matched the detection heuristic.
type MissingColumnError struct {
	Column string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q missing from header row", e.Column)
}

// MalformedRowError reports a data row with too few cells to cover the
// resolved column positions.
type MalformedRowError struct {
	Row int // 1-based row number in the source file
}

func (e MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: too few cells for the detected columns", e.Row)
}
