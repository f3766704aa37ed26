package pipeline

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
)

var one = decimal.NewFromInt(1)

// Forecast projects next-month spend for the categories that match each entry.
//
// Entries are processed in order. Each takes the first category in totals,
// not already claimed by an earlier entry, whose lowercased name contains one
// of its aliases. Entries that match nothing emit no row.
func Forecast(totals []model.CategoryTotal, entries []config.ForecastEntry) model.ForecastResult {
	var res model.ForecastResult
	if len(totals) == 0 {
		return res
	}

	lowered := make([][]byte, len(totals))
	for i, t := range totals {
		lowered[i] = []byte(strings.ToLower(t.Category))
	}

	claimed := make([]bool, len(totals))
	for _, e := range entries {
		aliases := e.LowerAliases()
		if len(aliases) == 0 {
			continue
		}
		matcher := ahocorasick.NewStringMatcher(aliases)

		for i, t := range totals {
			if claimed[i] || len(matcher.Match(lowered[i])) == 0 {
				continue
			}
			claimed[i] = true

			pct := e.Factor()
			projected := t.Amount.Mul(one.Add(pct))
			res.Rows = append(res.Rows, model.ForecastRow{
				Label:     e.Label,
				Category:  t.Category,
				Current:   t.Amount,
				Pct:       pct,
				Projected: projected,
				Delta:     projected.Sub(t.Amount),
			})
			break
		}
	}

	res.Headline = headline(res.Rows)
	return res
}

// headline picks the row with the largest absolute delta, first on ties.
func headline(rows []model.ForecastRow) *model.ForecastHeadline {
	if len(rows) == 0 {
		return nil
	}

	best := rows[0]
	for _, r := range rows[1:] {
		if r.Delta.Abs().GreaterThan(best.Delta.Abs()) {
			best = r
		}
	}

	dir := model.DirectionIncrease
	if best.Delta.IsNegative() {
		dir = model.DirectionDecrease
	}
	return &model.ForecastHeadline{
		Label:     best.Label,
		Pct:       best.Pct,
		Delta:     best.Delta,
		Direction: dir,
	}
}
