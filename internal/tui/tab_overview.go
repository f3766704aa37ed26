package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab indices, matching components.Tabs.
const (
	tabOverview = iota
	tabTrends
	tabDrivers
	tabForecast
	tabData
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	m := a.analysis.Metrics
	threshold := a.cfg.General.AdvisoryThreshold
	var b strings.Builder

	// Row 1: metric cards
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total Income", Value: cli.FormatMoney(m.TotalIncome), Color: t.Gain},
		{Label: "Total Expenses", Value: cli.FormatMoney(m.TotalExpense)},
		{Label: "Balance", Value: cli.FormatMoney(m.Balance), Color: t.Signed(!m.Balance.IsNegative())},
		{Label: "Spend Ratio", Value: cli.FormatPercent(m.SpendRatio), Note: fmt.Sprintf("advisory above %.0f%%", threshold),
			Color: components.ColorForRatio(m.SpendRatio, threshold)},
	}, cw))
	b.WriteString("\n")

	// Row 2: spending gauge and insights
	innerW := components.CardInnerWidth(cw)
	var gauge strings.Builder
	gauge.WriteString(components.SpendGauge("Spent", m.SpendRatio, threshold, 6, max(innerW-16, 10)))
	if m.Advisory {
		warn := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true)
		gauge.WriteString("\n\n")
		gauge.WriteString(warn.Render(fmt.Sprintf("⚠️  You're spending %s of your income. Consider budgeting tweaks.", cli.FormatPercent(m.SpendRatio))))
	}
	b.WriteString(components.ContentCard("Spending vs Income", gauge.String(), cw))
	b.WriteString("\n")

	if insights := a.insights(); insights != "" {
		b.WriteString(components.ContentCard("Insights", insights, cw))
		b.WriteString("\n")
	}

	if missing := a.analysis.Schema.Missing(); len(missing) > 0 {
		body := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).
			Render("No column found for: " + strings.Join(missing, ", ") + ". Add aliases under [aliases] in the config.")
		b.WriteString(components.ContentCard("Columns", body, cw))
	}

	return b.String()
}

func (a App) insights() string {
	t := theme.Active
	info := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	var lines []string

	if top := a.analysis.Categories.Top; top != nil {
		lines = append(lines, info.Render(fmt.Sprintf("💡 Your top spending category this cycle is %s at %s.",
			top.Category, cli.FormatMoney(top.Amount))))
	}
	if h := a.analysis.Forecast.Headline; h != nil {
		lines = append(lines, info.Render(fmt.Sprintf("📈 Your %s costs may %s by %s next month.",
			h.Label, h.Direction, cli.FormatFactor(h.Pct))))
	}
	if d := lastDrivers(a.analysis.Series); d != nil {
		lines = append(lines, info.Render(fmt.Sprintf("%s %s: spending %s of %s.",
			cli.DirectionEmoji(d.Increase()), cli.FormatMonth(d.Month), d.Direction, cli.FormatSignedMoney(d.NetChange))))
	}
	return strings.Join(lines, "\n")
}

func lastDrivers(ts model.TimeSeries) *model.MonthDrivers {
	if len(ts.Drivers) == 0 {
		return nil
	}
	return &ts.Drivers[len(ts.Drivers)-1]
}
