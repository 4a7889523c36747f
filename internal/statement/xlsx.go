package statement

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader decodes the first worksheet of an XLSX workbook. Cell values
// come back as displayed, matching what the account holder sees in Excel.
type XLSXReader struct{}

// Format returns the reader name.
func (xr *XLSXReader) Format() string { return FormatXLSX }

// ReadTable decodes an XLSX statement into a Table. Only the first
// worksheet is read; a workbook without sheets yields an empty table.
func (xr *XLSXReader) ReadTable(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return &Table{}, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q: %w", sheet, err)
	}
	return &Table{Rows: rows}, nil
}
