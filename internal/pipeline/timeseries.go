package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

// maxDrivers caps the per-month driver breakdown.
const maxDrivers = 3

// AggregateTimeSeries buckets expenses by calendar month and derives
// month-over-month changes per category.
//
// Only rows with a date, a numeric expense and a category take part; rows
// whose date does not parse are counted in Dropped. Changes compare each
// month with the previous month present in the data.
func AggregateTimeSeries(rs *model.RecordSet, schema model.Schema) model.TimeSeries {
	var ts model.TimeSeries
	if rs.Len() == 0 || !schema.Date.Resolved || !schema.Expense.Resolved || !schema.Category.Resolved {
		return ts
	}

	monthMap := make(map[string]*model.MonthStats)
	catTotals := make(map[string]decimal.Decimal)

	for _, row := range rs.Rows {
		dc := row[schema.Date.Column]
		cat := categoryKey(row[schema.Category.Column])
		amt, ok := row[schema.Expense.Column].Decimal()
		if dc.IsEmpty() || cat == "" || !ok {
			continue
		}
		t, ok := dc.Date()
		if !ok {
			ts.Dropped++
			continue
		}

		key := t.Format("2006-01")
		ms, ok := monthMap[key]
		if !ok {
			ms = &model.MonthStats{
				Month:      key,
				Start:      time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC),
				Categories: make(map[string]decimal.Decimal),
			}
			monthMap[key] = ms
		}
		ms.Expense = ms.Expense.Add(amt)
		ms.Categories[cat] = ms.Categories[cat].Add(amt)
		catTotals[cat] = catTotals[cat].Add(amt)
	}
	if len(monthMap) == 0 {
		return ts
	}

	for cat := range catTotals {
		ts.Categories = append(ts.Categories, cat)
	}
	sort.Strings(ts.Categories)

	ts.Months = make([]model.MonthStats, 0, len(monthMap))
	for _, ms := range monthMap {
		for _, cat := range ts.Categories {
			if _, ok := ms.Categories[cat]; !ok {
				ms.Categories[cat] = decimal.Zero
			}
		}
		ts.Months = append(ts.Months, *ms)
	}
	sort.Slice(ts.Months, func(i, j int) bool {
		return ts.Months[i].Start.Before(ts.Months[j].Start)
	})

	for i := 1; i < len(ts.Months); i++ {
		prev, cur := &ts.Months[i-1], &ts.Months[i]
		cur.Change = cur.Expense.Sub(prev.Expense)
		cur.HasChange = true

		cur.Deltas = make(map[string]decimal.Decimal, len(ts.Categories))
		for _, cat := range ts.Categories {
			cur.Deltas[cat] = cur.Categories[cat].Sub(prev.Categories[cat])
		}
		if d, ok := monthDrivers(cur.Month, ts.Categories, cur.Deltas); ok {
			ts.Drivers = append(ts.Drivers, d)
		}
	}

	ts.Totals = sortedTotals(catTotals)
	sort.SliceStable(ts.Totals, func(i, j int) bool {
		return ts.Totals[i].Amount.LessThan(ts.Totals[j].Amount)
	})

	return ts
}

// monthDrivers ranks the non-zero deltas of one month by magnitude. It
// reports false when nothing moved.
func monthDrivers(month string, cats []string, deltas map[string]decimal.Decimal) (model.MonthDrivers, bool) {
	d := model.MonthDrivers{Month: month}

	var moved []model.Driver
	for _, cat := range cats {
		delta := deltas[cat]
		d.NetChange = d.NetChange.Add(delta)
		if !delta.IsZero() {
			moved = append(moved, model.Driver{Category: cat, Change: delta})
		}
	}
	if len(moved) == 0 {
		return d, false
	}

	// cats is sorted, so equal magnitudes stay in name order.
	sort.SliceStable(moved, func(i, j int) bool {
		return moved[i].Change.Abs().GreaterThan(moved[j].Change.Abs())
	})
	if len(moved) > maxDrivers {
		moved = moved[:maxDrivers]
	}
	d.Drivers = moved

	if d.NetChange.IsPositive() {
		d.Direction = model.DirectionIncrease
	} else {
		d.Direction = model.DirectionDecrease
	}
	return d, true
}
