package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
)

var budgetHeader = []string{"Date", "Income Amount", "Expense Amount", "Expense Category"}

// table builds a record set from string cells; "" is an empty cell.
func table(t *testing.T, header []string, rows ...[]string) *model.RecordSet {
	t.Helper()
	rs := model.NewRecordSet(header)
	for _, r := range rows {
		cells := make([]model.Cell, len(r))
		for i, v := range r {
			cells[i] = model.Text(v)
		}
		rs.Append(cells)
	}
	return rs
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func defaultSchema(rs *model.RecordSet) model.Schema {
	return ResolveSchema(rs.Columns, config.DefaultAliases())
}
