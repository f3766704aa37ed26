package pipeline

import (
	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
)

// Options controls one analysis pass.
type Options struct {
	Aliases           config.AliasConfig
	Forecast          []config.ForecastEntry
	AdvisoryThreshold float64
}

// OptionsFromConfig takes the analysis settings out of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Aliases:           cfg.Aliases,
		Forecast:          cfg.Forecast,
		AdvisoryThreshold: cfg.General.AdvisoryThreshold,
	}
}

// Analyze resolves the schema of the session's record set and runs every
// component over it. Each component degrades to an empty result on its own
// when the columns it needs are missing.
func Analyze(sess *Session, opts Options) model.Analysis {
	var rs *model.RecordSet
	var a model.Analysis
	if sess != nil {
		rs = sess.Records
		a.Source = sess.Source
	}

	a.Rows = rs.Len()
	if rs != nil {
		a.Schema = ResolveSchema(rs.Columns, opts.Aliases)
	}
	a.Metrics = ComputeMetrics(rs, a.Schema, opts.AdvisoryThreshold)
	a.Categories = AggregateCategories(rs, a.Schema)
	a.Series = AggregateTimeSeries(rs, a.Schema)
	a.Forecast = Forecast(a.Categories.Totals, opts.Forecast)

	return a
}
