package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metrics holds the whole-table income and expense aggregates.
type Metrics struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	SpendRatio   float64         `json:"spend_ratio"` // percent of income spent
	Advisory     bool            `json:"advisory"`
}

// CategoryTotal is the summed expense of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryBreakdown holds per-category expense sums in category name order.
type CategoryBreakdown struct {
	Totals []CategoryTotal `json:"totals"`
	Top    *CategoryTotal  `json:"top,omitempty"`
}

// Amounts returns the totals as a category -> amount map.
func (b CategoryBreakdown) Amounts() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(b.Totals))
	for _, t := range b.Totals {
		m[t.Category] = t.Amount
	}
	return m
}

// MonthStats holds one calendar-month bucket.
type MonthStats struct {
	Month     string          `json:"month"` // "2006-01"
	Start     time.Time       `json:"start"`
	Expense   decimal.Decimal `json:"expense"`
	Change    decimal.Decimal `json:"change"`
	HasChange bool            `json:"has_change"` // false for the first month

	// Categories has an entry for every category in the series, zero-filled.
	Categories map[string]decimal.Decimal `json:"categories"`
	// Deltas is nil for the first month.
	Deltas map[string]decimal.Decimal `json:"deltas,omitempty"`
}

// Driver is a category whose month-over-month change ranks among the largest.
type Driver struct {
	Category string          `json:"category"`
	Change   decimal.Decimal `json:"change"`
}

// MonthDrivers summarises what moved spending in one month.
type MonthDrivers struct {
	Month     string          `json:"month"`
	NetChange decimal.Decimal `json:"net_change"`
	Direction string          `json:"direction"` // "increase" or "decrease"
	Drivers   []Driver        `json:"drivers"`
}

// Increase reports whether net spending went up.
func (d MonthDrivers) Increase() bool {
	return d.Direction == DirectionIncrease
}

// Direction values.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// TimeSeries is the monthly view of the date-valid rows.
type TimeSeries struct {
	Months     []MonthStats    `json:"months"`
	Categories []string        `json:"categories"`
	Drivers    []MonthDrivers  `json:"drivers"`
	Totals     []CategoryTotal `json:"category_totals"` // ascending by amount
	Dropped    int             `json:"dropped_rows"`
}

// Empty reports whether the series has no month buckets.
func (ts TimeSeries) Empty() bool {
	return len(ts.Months) == 0
}
