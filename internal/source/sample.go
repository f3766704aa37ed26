package source

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

// SampleColumns is the header of the built-in dataset.
var SampleColumns = []string{"Date", "Income Amount", "Expense Amount", "Expense Category"}

// Sample returns the demo dataset: one row per month end, January to June 2024.
func Sample() *model.RecordSet {
	income := []int64{3000, 3200, 3100, 3050, 3150, 3300}
	expense := []int64{2000, 2100, 1900, 2200, 2050, 2150}
	categories := []string{"Groceries", "Utilities", "Transportation"}

	rs := model.NewRecordSet(SampleColumns)
	for i := range income {
		// last day of month i+1
		day := time.Date(2024, time.Month(i+2), 0, 0, 0, 0, 0, time.UTC)
		rs.Append([]model.Cell{
			model.Date(day),
			model.Number(decimal.NewFromInt(income[i])),
			model.Number(decimal.NewFromInt(expense[i])),
			model.Text(categories[i%len(categories)]),
		})
	}
	return rs
}
