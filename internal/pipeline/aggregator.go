// Package pipeline turns a record set into budget metrics, monthly trends and
// forecasts.
package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ComputeMetrics sums the income and expense columns over every row.
// Cells that are empty or not numeric contribute nothing. All outputs are
// zero unless both columns are resolved and the record set has rows.
func ComputeMetrics(rs *model.RecordSet, schema model.Schema, advisoryThreshold float64) model.Metrics {
	var m model.Metrics
	if rs.Len() == 0 || !schema.Income.Resolved || !schema.Expense.Resolved {
		return m
	}

	m.TotalIncome = sumColumn(rs, schema.Income.Column)
	m.TotalExpense = sumColumn(rs, schema.Expense.Column)
	m.Balance = m.TotalIncome.Sub(m.TotalExpense)

	if !m.TotalIncome.IsZero() {
		m.SpendRatio = m.TotalExpense.Div(m.TotalIncome).Mul(hundred).InexactFloat64()
	}
	m.Advisory = m.SpendRatio > advisoryThreshold

	return m
}

// AggregateCategories sums expense per category. Rows without a category are
// not grouped. Totals are ordered by category name; Top is the largest total,
// the alphabetically first category winning a tie.
func AggregateCategories(rs *model.RecordSet, schema model.Schema) model.CategoryBreakdown {
	var b model.CategoryBreakdown
	if rs.Len() == 0 || !schema.Category.Resolved || !schema.Expense.Resolved {
		return b
	}

	sums := make(map[string]decimal.Decimal)
	for _, row := range rs.Rows {
		cat := categoryKey(row[schema.Category.Column])
		if cat == "" {
			continue
		}
		amt, _ := row[schema.Expense.Column].Decimal()
		sums[cat] = sums[cat].Add(amt)
	}
	if len(sums) == 0 {
		return b
	}

	b.Totals = sortedTotals(sums)
	top := b.Totals[0]
	for _, t := range b.Totals[1:] {
		if t.Amount.GreaterThan(top.Amount) {
			top = t
		}
	}
	b.Top = &top

	return b
}

func sumColumn(rs *model.RecordSet, col string) decimal.Decimal {
	var total decimal.Decimal
	for _, row := range rs.Rows {
		if v, ok := row[col].Decimal(); ok {
			total = total.Add(v)
		}
	}
	return total
}

func categoryKey(c model.Cell) string {
	return c.String()
}

// sortedTotals converts a category map to a slice ordered by name.
func sortedTotals(sums map[string]decimal.Decimal) []model.CategoryTotal {
	out := make([]model.CategoryTotal, 0, len(sums))
	for cat, amt := range sums {
		out = append(out, model.CategoryTotal{Category: cat, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}
