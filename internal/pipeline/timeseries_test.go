package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bburn/internal/model"
)

func monthKeys(ts model.TimeSeries) []string {
	keys := make([]string, len(ts.Months))
	for i, m := range ts.Months {
		keys[i] = m.Month
	}
	return keys
}

func TestAggregateTimeSeries_TwoMonths(t *testing.T) {
	rs := table(t, budgetHeader,
		[]string{"2024-01-15", "3000", "2000", "Groceries"},
		[]string{"2024-02-15", "3200", "2100", "Utilities"},
	)

	ts := AggregateTimeSeries(rs, defaultSchema(rs))

	require.Equal(t, []string{"2024-01", "2024-02"}, monthKeys(ts))
	jan, feb := ts.Months[0], ts.Months[1]

	assert.Equal(t, "2000", jan.Expense.String())
	assert.False(t, jan.HasChange)
	assert.Nil(t, jan.Deltas)

	assert.Equal(t, "2100", feb.Expense.String())
	assert.True(t, feb.HasChange)
	assert.Equal(t, "100", feb.Change.String())

	// every category has a value in every month
	assert.True(t, jan.Categories["Utilities"].IsZero())
	assert.True(t, feb.Categories["Groceries"].IsZero())

	assert.Equal(t, "-2000", feb.Deltas["Groceries"].String())
	assert.Equal(t, "2100", feb.Deltas["Utilities"].String())

	require.Len(t, ts.Drivers, 1)
	d := ts.Drivers[0]
	assert.Equal(t, "2024-02", d.Month)
	assert.Equal(t, "100", d.NetChange.String())
	assert.Equal(t, model.DirectionIncrease, d.Direction)
	require.Len(t, d.Drivers, 2)
	assert.Equal(t, "Utilities", d.Drivers[0].Category)
	assert.Equal(t, "Groceries", d.Drivers[1].Category)
}

func TestAggregateTimeSeries_DropsBadDates(t *testing.T) {
	rs := table(t, budgetHeader,
		[]string{"2024-03-01", "0", "10", "A"},
		[]string{"not a date", "0", "99", "A"},
		[]string{"", "0", "99", "A"},
		[]string{"2024-03-09", "0", "", "A"},
		[]string{"03/20/2024", "0", "5", "B"},
	)

	ts := AggregateTimeSeries(rs, defaultSchema(rs))

	require.Equal(t, []string{"2024-03"}, monthKeys(ts))
	assert.Equal(t, "15", ts.Months[0].Expense.String())
	assert.Equal(t, 1, ts.Dropped)
	assert.Empty(t, ts.Drivers)
	assert.Equal(t, 5, rs.Len(), "record set is left untouched")
}

func TestAggregateTimeSeries_ChangeAgainstPreviousPresentMonth(t *testing.T) {
	rs := table(t, budgetHeader,
		[]string{"2024-01-31", "0", "100", "A"},
		[]string{"2024-04-30", "0", "250", "A"},
		[]string{"2023-12-01", "0", "40", "A"},
	)

	ts := AggregateTimeSeries(rs, defaultSchema(rs))

	require.Equal(t, []string{"2023-12", "2024-01", "2024-04"}, monthKeys(ts))
	assert.Equal(t, "60", ts.Months[1].Change.String())
	assert.Equal(t, "150", ts.Months[2].Change.String())
}

func TestAggregateTimeSeries_DriversTopThreeByMagnitude(t *testing.T) {
	rs := table(t, budgetHeader,
		[]string{"2024-01-01", "0", "100", "A"},
		[]string{"2024-01-01", "0", "100", "B"},
		[]string{"2024-01-01", "0", "100", "C"},
		[]string{"2024-01-01", "0", "100", "D"},
		[]string{"2024-01-01", "0", "100", "E"},
		[]string{"2024-02-01", "0", "90", "A"},  // -10
		[]string{"2024-02-01", "0", "150", "B"}, // +50
		[]string{"2024-02-01", "0", "70", "C"},  // -30
		[]string{"2024-02-01", "0", "100", "D"}, // 0
		[]string{"2024-02-01", "0", "70", "E"},  // -30
	)

	ts := AggregateTimeSeries(rs, defaultSchema(rs))

	require.Len(t, ts.Drivers, 1)
	d := ts.Drivers[0]
	require.Len(t, d.Drivers, 3)
	assert.Equal(t, "B", d.Drivers[0].Category)
	assert.Equal(t, "C", d.Drivers[1].Category, "equal magnitudes keep name order")
	assert.Equal(t, "E", d.Drivers[2].Category)

	// net change covers every category, not just the top three
	assert.Equal(t, "-20", d.NetChange.String())
	assert.Equal(t, model.DirectionDecrease, d.Direction)
}

func TestAggregateTimeSeries_FlatMonthHasNoDrivers(t *testing.T) {
	rs := table(t, budgetHeader,
		[]string{"2024-01-01", "0", "100", "A"},
		[]string{"2024-02-01", "0", "100", "A"},
		[]string{"2024-03-01", "0", "80", "A"},
	)

	ts := AggregateTimeSeries(rs, defaultSchema(rs))

	require.Len(t, ts.Drivers, 1)
	assert.Equal(t, "2024-03", ts.Drivers[0].Month)
	assert.True(t, ts.Months[1].Change.IsZero())
	assert.True(t, ts.Months[1].HasChange)
}

func TestAggregateTimeSeries_ZeroNetChangeIsDecrease(t *testing.T) {
	rs := table(t, budgetHeader,
		[]string{"2024-01-01", "0", "100", "A"},
		[]string{"2024-02-01", "0", "50", "A"},
		[]string{"2024-02-01", "0", "50", "B"},
	)

	ts := AggregateTimeSeries(rs, defaultSchema(rs))

	require.Len(t, ts.Drivers, 1)
	assert.True(t, ts.Drivers[0].NetChange.IsZero())
	assert.Equal(t, model.DirectionDecrease, ts.Drivers[0].Direction)
	assert.False(t, ts.Drivers[0].Increase())
}

func TestAggregateTimeSeries_CategoryTotalsAscending(t *testing.T) {
	rs := table(t, budgetHeader,
		[]string{"2024-01-01", "0", "300", "Rent"},
		[]string{"2024-01-01", "0", "20", "Coffee"},
		[]string{"2024-02-01", "0", "80", "Food"},
		[]string{"bad", "0", "1000", "Food"},
	)

	ts := AggregateTimeSeries(rs, defaultSchema(rs))

	require.Len(t, ts.Totals, 3)
	assert.Equal(t, "Coffee", ts.Totals[0].Category)
	assert.Equal(t, "Food", ts.Totals[1].Category)
	assert.Equal(t, "80", ts.Totals[1].Amount.String(), "only date-valid rows count")
	assert.Equal(t, "Rent", ts.Totals[2].Category)
	assert.Equal(t, []string{"Coffee", "Food", "Rent"}, ts.Categories)
}

func TestAggregateTimeSeries_RequiresAllFields(t *testing.T) {
	rs := table(t, []string{"Date", "Expense Amount"},
		[]string{"2024-01-01", "10"},
	)

	ts := AggregateTimeSeries(rs, defaultSchema(rs))

	assert.True(t, ts.Empty())
	assert.Empty(t, ts.Drivers)
	assert.Empty(t, ts.Totals)
}
