package config

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AliasConfig lists, per logical field, the column names accepted for it in
// priority order.
type AliasConfig struct {
	Date     []string `toml:"date"`
	Income   []string `toml:"income"`
	Expense  []string `toml:"expense"`
	Category []string `toml:"category"`
}

// DefaultAliases returns the built-in column aliases.
func DefaultAliases() AliasConfig {
	return AliasConfig{
		Date:     []string{"Date", "Transaction Date"},
		Income:   []string{"Income Amount", "Income", "Earnings"},
		Expense:  []string{"Expense Amount", "Expenses", "Spending"},
		Category: []string{"Expense Category", "Category", "Spending Category"},
	}
}

// ForecastEntry is one heuristic projection: categories whose name contains
// any alias are expected to move by Pct next month.
type ForecastEntry struct {
	Label   string   `toml:"label"`
	Aliases []string `toml:"aliases"`
	Pct     float64  `toml:"pct"` // fraction, 0.015 == +1.5%
}

// Factor returns Pct as a decimal.
func (e ForecastEntry) Factor() decimal.Decimal {
	return decimal.NewFromFloat(e.Pct)
}

// LowerAliases returns the aliases lowercased with blanks removed.
func (e ForecastEntry) LowerAliases() []string {
	out := make([]string, 0, len(e.Aliases))
	for _, a := range e.Aliases {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// DefaultForecast returns the built-in projection table.
func DefaultForecast() []ForecastEntry {
	return []ForecastEntry{
		{
			Label:   "Groceries 🛒",
			Aliases: []string{"groceries", "food", "supermarket", "grocery"},
			Pct:     0.015,
		},
		{
			Label:   "Transportation 🚗",
			Aliases: []string{"transportation", "gas", "fuel", "car", "commute"},
			Pct:     -0.008,
		},
		{
			Label:   "Utilities ⚡",
			Aliases: []string{"utilities", "electric", "water", "power", "gas bill", "energy"},
			Pct:     0.022,
		},
	}
}

// LookupForecast returns the entry with the given label.
func LookupForecast(entries []ForecastEntry, label string) (ForecastEntry, bool) {
	for _, e := range entries {
		if e.Label == label {
			return e, true
		}
	}
	return ForecastEntry{}, false
}
