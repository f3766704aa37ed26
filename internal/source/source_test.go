package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/bburn/internal/model"
)

func TestReadCSV_Delimiters(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"comma", "Date,Expense Amount,Expense Category\n2024-01-05,12.50,Food\n"},
		{"semicolon", "Date;Expense Amount;Expense Category\n2024-01-05;12.50;Food\n"},
		{"tab with bom", "\xEF\xBB\xBFDate\tExpense Amount\tExpense Category\n2024-01-05\t12.50\tFood\n"},
		{"pipe", "Date|Expense Amount|Expense Category\r\n2024-01-05|12.50|Food\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := ReadCSV(strings.NewReader(tt.data))
			require.NoError(t, err)

			assert.Equal(t, []string{"Date", "Expense Amount", "Expense Category"}, rs.Columns)
			require.Equal(t, 1, rs.Len())
			assert.Equal(t, "Food", rs.Rows[0]["Expense Category"].String())
			amt, ok := rs.Rows[0]["Expense Amount"].Decimal()
			require.True(t, ok)
			assert.Equal(t, "12.5", amt.String())
		})
	}
}

func TestReadCSV_QuotedFieldsAndBlankRows(t *testing.T) {
	data := "\n" +
		"Date,Expense Amount,Expense Category\n" +
		"2024-01-05,\"1,200.00\",\"Rent, Flat\"\n" +
		",,\n" +
		"\n" +
		"2024-01-06,5,\n"

	rs, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "Rent, Flat", rs.Rows[0]["Expense Category"].String())
	amt, ok := rs.Rows[0]["Expense Amount"].Decimal()
	require.True(t, ok)
	assert.Equal(t, "1200", amt.String())
	assert.True(t, rs.Rows[1]["Expense Category"].IsEmpty())
}

func TestReadCSV_RaggedRows(t *testing.T) {
	rs, err := ReadCSV(strings.NewReader("A,B,C\n1\n1,2,3,4\n"))
	require.NoError(t, err)

	require.Equal(t, 2, rs.Len())
	assert.True(t, rs.Rows[0]["C"].IsEmpty())
	assert.Len(t, rs.Rows[1], 3)
}

func TestReadCSV_DuplicateAndBlankHeaders(t *testing.T) {
	rs, err := ReadCSV(strings.NewReader("Amount,,Amount\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Amount", "Unnamed: 1", "Amount.1"}, rs.Columns)
	assert.Equal(t, "3", rs.Rows[0]["Amount.1"].String())
}

func TestReadCSV_Empty(t *testing.T) {
	rs, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, rs.Len())
	assert.Empty(t, rs.Columns)
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', DetectDelimiter("a,b,c"))
	assert.Equal(t, ';', DetectDelimiter(`"x,y";b;c`), "quoted commas are ignored")
	assert.Equal(t, ',', DetectDelimiter("single"))
}

func writeWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := writeWorkbook(t, [][]any{
		{"Date", "Income Amount", "Expense Amount", "Expense Category"},
		{"2024-01-31", 3000, 2000, "Groceries"},
		nil,
		{"2024-02-29", 3200, 2100.5, "Utilities"},
	})

	rs, err := ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, SampleColumns, rs.Columns)
	require.Equal(t, 2, rs.Len())
	amt, ok := rs.Rows[1]["Expense Amount"].Decimal()
	require.True(t, ok)
	assert.Equal(t, "2100.5", amt.String())
	d, ok := rs.Rows[1]["Date"].Date()
	require.True(t, ok)
	assert.Equal(t, "2024-02", d.Format("2006-01"))
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("plain text"))
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget.CSV")
	require.NoError(t, os.WriteFile(path, []byte("Date,Expenses\n2024-01-01,10\n"), 0o600))

	rs, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, rs.Len())

	_, err = Open(filepath.Join(dir, "budget.pdf"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSample(t *testing.T) {
	rs := Sample()

	require.Equal(t, 6, rs.Len())
	assert.Equal(t, SampleColumns, rs.Columns)

	first, last := rs.Rows[0]["Date"], rs.Rows[5]["Date"]
	assert.Equal(t, model.KindDate, first.Kind)
	assert.Equal(t, "2024-01-31", first.String())
	assert.Equal(t, "2024-06-30", last.String())
	assert.Equal(t, "2024-02-29", rs.Rows[1]["Date"].String())
	assert.Equal(t, "Transportation", rs.Rows[5]["Expense Category"].String())
}
