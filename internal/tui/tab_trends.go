package tui

import (
	"strings"
	"time"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTrendsTab(cw int) string {
	t := theme.Active
	ts := a.analysis.Series
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if ts.Empty() {
		return components.ContentCard("Monthly Spending",
			muted.Render("Needs date, expense, and category columns with at least one valid row."), cw)
	}

	var b strings.Builder

	values := make([]float64, len(ts.Months))
	for i, m := range ts.Months {
		values[i] = m.Expense.InexactFloat64()
	}
	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	chart := components.ColumnChart(values, monthLabels(ts.Months), t.Bar, components.CardInnerWidth(cw), chartH)
	b.WriteString(components.ContentCard("Monthly Spending", chart, cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Month over Month", a.renderChangeTable(ts.Months), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Spending by Category", renderCategoryBars(ts.Totals, components.CardInnerWidth(cw)), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Month over Month", a.renderChangeTable(ts.Months), halves[0]),
			components.ContentCard("Spending by Category", renderCategoryBars(ts.Totals, components.CardInnerWidth(halves[1])), halves[1]),
		}))
	}

	if ts.Dropped > 0 {
		b.WriteString("\n")
		b.WriteString(muted.Render(cli.FormatSkippedDates(ts.Dropped)))
	}
	return b.String()
}

func (a App) renderChangeTable(months []model.MonthStats) string {
	t := theme.Active
	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(header.Render(padCell("Month", 10) + " " + padCellLeft("Expenses", 14) + " " + padCellLeft("Change", 14)))
	b.WriteString("\n")
	for _, m := range months {
		b.WriteString(row.Render(padCell(cli.FormatMonth(m.Month), 10) + " " + padCellLeft(cli.FormatMoney(m.Expense), 14)))
		b.WriteString(space.Render(" "))
		if m.HasChange {
			style := lipgloss.NewStyle().Foreground(t.Signed(!m.Change.IsPositive())).Background(t.Surface)
			b.WriteString(style.Render(padCellLeft(cli.FormatSignedMoney(m.Change), 14)))
		} else {
			b.WriteString(dim.Render(padCellLeft("-", 14)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderCategoryBars draws the category totals, smallest first.
func renderCategoryBars(totals []model.CategoryTotal, innerW int) string {
	if len(totals) == 0 {
		return ""
	}
	labelW := 0
	peak := 0.0
	valueW := 0
	for _, ct := range totals {
		labelW = max(labelW, lipgloss.Width(ct.Category))
		peak = max(peak, ct.Amount.InexactFloat64())
		valueW = max(valueW, len(cli.FormatMoney(ct.Amount)))
	}
	labelW = min(labelW, innerW/3)
	barW := max(innerW-labelW-valueW-2, 4)

	lines := make([]string, 0, len(totals))
	for _, ct := range totals {
		lines = append(lines, components.HBar(ct.Category, labelW, ct.Amount.InexactFloat64(), peak, barW, cli.FormatMoney(ct.Amount)))
	}
	return strings.Join(lines, "\n")
}

// monthLabels returns "Jan" style labels, adding the year when it changes.
func monthLabels(months []model.MonthStats) []string {
	labels := make([]string, len(months))
	prevYear := 0
	for i, m := range months {
		start, err := time.Parse("2006-01", m.Month)
		if err != nil {
			labels[i] = m.Month
			continue
		}
		if i == 0 || start.Year() != prevYear {
			labels[i] = start.Format("Jan 06")
		} else {
			labels[i] = start.Format("Jan")
		}
		prevYear = start.Year()
	}
	return labels
}

func padCell(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func padCellLeft(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
