package model

import "github.com/shopspring/decimal"

// ForecastRow is the projection for one matched category.
type ForecastRow struct {
	Label     string          `json:"label"`
	Category  string          `json:"category"`
	Current   decimal.Decimal `json:"current"`
	Pct       decimal.Decimal `json:"pct"` // fraction, 0.015 == +1.5%
	Projected decimal.Decimal `json:"projected"`
	Delta     decimal.Decimal `json:"delta"`
}

// ForecastHeadline is the single largest projected move.
type ForecastHeadline struct {
	Label     string          `json:"label"`
	Pct       decimal.Decimal `json:"pct"`
	Delta     decimal.Decimal `json:"delta"`
	Direction string          `json:"direction"`
}

// ForecastResult holds every emitted projection in label order.
type ForecastResult struct {
	Rows     []ForecastRow     `json:"rows"`
	Headline *ForecastHeadline `json:"headline,omitempty"`
}

// Analysis bundles the outputs of one pass over a record set.
type Analysis struct {
	Source     string            `json:"source"`
	Rows       int               `json:"rows"`
	Schema     Schema            `json:"schema"`
	Metrics    Metrics           `json:"metrics"`
	Categories CategoryBreakdown `json:"categories"`
	Series     TimeSeries        `json:"series"`
	Forecast   ForecastResult    `json:"forecast"`
}
