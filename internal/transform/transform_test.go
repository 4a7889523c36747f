package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actual-tools/intesa2actual/internal/model"
)

func statementRows() [][]string {
	return [][]string{
		{"Estratto Conto", "", "", ""},
		{"Intestatario: MARIO ROSSI", "", "", ""},
		{"Periodo: 01/01/2024 - 31/01/2024", "", "", ""},
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"01/01/2024", "Pagamento POS", "Supermercato", "-25,50"},
		{"02/01/2024", "Bonifico", "Stipendio gennaio", "1.234,56"},
	}
}

func TestLocateHeader_SkipsMetadata(t *testing.T) {
	idx, err := LocateHeader(statementRows())
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
}

func TestLocateHeader_FirstRow(t *testing.T) {
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"01/01/2024", "Pagamento POS", "Supermercato", "-25,50"},
	}
	idx, err := LocateHeader(rows)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestLocateHeader_CaseAndWhitespace(t *testing.T) {
	rows := [][]string{
		{" DATA ", "operazione", " Dettagli", "IMPORTO "},
	}
	idx, err := LocateHeader(rows)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestLocateHeader_ExtraColumns(t *testing.T) {
	rows := [][]string{
		{"Data", "Conto", "Operazione", "Dettagli", "Valuta", "Importo"},
	}
	idx, err := LocateHeader(rows)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestLocateHeader_NotFound(t *testing.T) {
	rows := [][]string{
		{"Estratto Conto", "", ""},
		{"Date", "Payee", "Amount"},
	}
	_, err := LocateHeader(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestLocateHeader_EmptyInput(t *testing.T) {
	_, err := LocateHeader(nil)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestResolveColumns_StandardOrder(t *testing.T) {
	cols, err := ResolveColumns([]string{"Data", "Operazione", "Dettagli", "Importo"})
	require.NoError(t, err)
	assert.Equal(t, Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}, cols)
	assert.Equal(t, 3, cols.Max())
}

func TestResolveColumns_Reordered(t *testing.T) {
	cols, err := ResolveColumns([]string{"Importo", "Dettagli", "Operazione", "Data"})
	require.NoError(t, err)
	assert.Equal(t, Columns{Date: 3, Payee: 2, Notes: 1, Amount: 0}, cols)
}

func TestResolveColumns_ExtraColumns(t *testing.T) {
	cols, err := ResolveColumns([]string{"Conto", "Data", "Valuta", "Operazione", "Dettagli", "Importo"})
	require.NoError(t, err)
	assert.Equal(t, Columns{Date: 1, Payee: 3, Notes: 4, Amount: 5}, cols)
}

func TestResolveColumns_Missing(t *testing.T) {
	_, err := ResolveColumns([]string{"Data", "Operazione", "Dettagli"})
	require.Error(t, err)

	var mcErr MissingColumnError
	require.True(t, errors.As(err, &mcErr))
	assert.Equal(t, "Importo", mcErr.Column)
}

func TestExtractRecords_Basic(t *testing.T) {
	rows := statementRows()
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	txns, skipped, err := ExtractRecords(rows, 3, cols, ',', false)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, txns, 2)

	assert.Equal(t, "01/01/2024", txns[0].Date)
	assert.Equal(t, "Pagamento POS", txns[0].Payee)
	assert.Equal(t, "Supermercato", txns[0].Notes)
	assert.Equal(t, "-25,50", txns[0].Amount)
	assert.Equal(t, 5, txns[0].Row)

	// Amounts pass through verbatim, thousands separator included.
	assert.Equal(t, "1.234,56", txns[1].Amount)
}

func TestExtractRecords_SkipsBlankRows(t *testing.T) {
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"01/01/2024", "Pagamento POS", "Supermercato", "-25,50"},
		{"", "", "", ""},
		{},
		{"02/01/2024", "Bonifico", "Stipendio", "1.000,00"},
		{"   ", ""},
	}
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	txns, skipped, err := ExtractRecords(rows, 0, cols, ',', false)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Len(t, txns, 2)
}

func TestExtractRecords_ShortRowSkippedAndReported(t *testing.T) {
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"01/01/2024", "Pagamento POS", "Supermercato", "-25,50"},
		{"Saldo finale", "1.000,00"},
		{"02/01/2024", "Bonifico", "Stipendio", "1.000,00"},
	}
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	txns, skipped, err := ExtractRecords(rows, 0, cols, ',', false)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, skipped)
	require.Len(t, txns, 2)
	assert.Equal(t, "01/01/2024", txns[0].Date)
	assert.Equal(t, "02/01/2024", txns[1].Date)
}

func TestExtractRecords_ShortRowStrict(t *testing.T) {
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"Saldo finale", "1.000,00"},
	}
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	_, _, err := ExtractRecords(rows, 0, cols, ',', true)
	require.Error(t, err)

	var mrErr MalformedRowError
	require.True(t, errors.As(err, &mrErr))
	assert.Equal(t, 2, mrErr.Row)
}

func TestExtractRecords_AmountTailJoin(t *testing.T) {
	// "-25,50" under a comma delimiter parses as two cells; with Importo
	// last in the header the tail is rejoined.
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"01/01/2024", "Pagamento POS", "Supermercato", "-25", "50"},
	}
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	txns, skipped, err := ExtractRecords(rows, 0, cols, ',', false)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, txns, 1)
	assert.Equal(t, "-25,50", txns[0].Amount)
}

func TestExtractRecords_TrailingDelimiterCells(t *testing.T) {
	// Exports that pad every row with a trailing delimiter leave an empty
	// surplus cell behind the amount; it must not leak into the value.
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"01/03/2024", "Pagamento POS", "Esselunga Milano", "-42,18", ""},
		{"04/03/2024", "Bonifico", "Stipendio", "1.850,00", "", ""},
	}
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	txns, skipped, err := ExtractRecords(rows, 0, cols, ';', false)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, txns, 2)
	assert.Equal(t, "-42,18", txns[0].Amount)
	assert.Equal(t, "1.850,00", txns[1].Amount)
}

func TestExtractRecords_TailJoinWithTrailingEmptyCell(t *testing.T) {
	// A comma parse can split the amount and still leave a padding cell
	// after it; only the value cells are rejoined.
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"01/01/2024", "Pagamento POS", "Supermercato", "-25", "50", ""},
	}
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	txns, skipped, err := ExtractRecords(rows, 0, cols, ',', false)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, txns, 1)
	assert.Equal(t, "-25,50", txns[0].Amount)
}

func TestExtractRecords_PaddedHeaderRow(t *testing.T) {
	// When the header carries the padding cell too, the amount column is
	// no longer last and rows read positionally without joining.
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo", ""},
		{"01/03/2024", "Pagamento POS", "Esselunga Milano", "-42,18", ""},
	}
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	txns, _, err := ExtractRecords(rows, 0, cols, ';', false)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "-42,18", txns[0].Amount)
}

func TestExtractRecords_NoTailJoinWhenAmountNotLast(t *testing.T) {
	rows := [][]string{
		{"Data", "Importo", "Operazione", "Dettagli"},
		{"01/01/2024", "-25,50", "Pagamento POS", "Supermercato", "extra"},
	}
	cols := Columns{Date: 0, Payee: 2, Notes: 3, Amount: 1}

	txns, _, err := ExtractRecords(rows, 0, cols, ';', false)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "-25,50", txns[0].Amount)
}

func TestExtractRecords_NoTailJoinWithoutDelimiter(t *testing.T) {
	// XLSX rows were never split by a delimiter, so surplus cells stay out.
	rows := [][]string{
		{"Data", "Operazione", "Dettagli", "Importo"},
		{"01/01/2024", "Pagamento POS", "Supermercato", "-25,50", "EUR"},
	}
	cols := Columns{Date: 0, Payee: 1, Notes: 2, Amount: 3}

	txns, _, err := ExtractRecords(rows, 0, cols, 0, false)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "-25,50", txns[0].Amount)
}

func TestExtractRecords_ReorderedColumns(t *testing.T) {
	rows := [][]string{
		{"Importo", "Dettagli", "Operazione", "Data"},
		{"-25,50", "Supermercato", "Pagamento POS", "01/01/2024"},
	}
	cols, err := ResolveColumns(rows[0])
	require.NoError(t, err)

	txns, _, err := ExtractRecords(rows, 0, cols, ';', false)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "01/01/2024", txns[0].Date)
	assert.Equal(t, "Pagamento POS", txns[0].Payee)
	assert.Equal(t, "Supermercato", txns[0].Notes)
	assert.Equal(t, "-25,50", txns[0].Amount)
}

func TestToOutputRecords_Constants(t *testing.T) {
	txns := []model.Transaction{
		{Date: "01/01/2024", Payee: "Pagamento POS", Notes: "Supermercato", Amount: "-25,50"},
		{Date: "02/01/2024", Payee: "Bonifico", Notes: "Stipendio", Amount: "1.234,56"},
	}

	records := ToOutputRecords(txns, "Intesa SanPaolo")
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "Intesa SanPaolo", rec.Account)
		assert.Empty(t, rec.Category)
		assert.Empty(t, rec.SplitAmount)
		assert.Empty(t, rec.Cleared)
	}
	assert.Equal(t, "-25,50", records[0].Amount)
	assert.Equal(t, "1.234,56", records[1].Amount)
}

func TestToOutputRecords_Empty(t *testing.T) {
	assert.Nil(t, ToOutputRecords(nil, "Intesa SanPaolo"))
}
