package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/export"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderForecastTab(cw int) string {
	t := theme.Active
	res := a.analysis.Forecast
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(res.Rows) == 0 {
		return components.ContentCard("Next Month Forecast",
			muted.Render("No category matches a forecast entry. Entries live under [[forecast]] in the config."), cw)
	}

	lines := export.ForecastLines(res)
	widths := make([]int, len(export.ForecastHeader))
	for i, h := range export.ForecastHeader {
		widths[i] = lipgloss.Width(h)
	}
	for _, l := range lines {
		for i, c := range l.Cells() {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	cell := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var body strings.Builder
	for i, h := range export.ForecastHeader {
		if i > 0 {
			body.WriteString(space.Render("  "))
		}
		body.WriteString(header.Render(alignCell(h, widths[i], i > 0)))
	}
	for r, l := range lines {
		body.WriteString("\n")
		for i, c := range l.Cells() {
			if i > 0 {
				body.WriteString(space.Render("  "))
			}
			style := cell
			if i == len(widths)-1 {
				style = lipgloss.NewStyle().Foreground(t.Signed(!res.Rows[r].Delta.IsPositive())).Background(t.Surface)
			}
			body.WriteString(style.Render(alignCell(c, widths[i], i > 0)))
		}
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Next Month Forecast", body.String(), cw))
	b.WriteString("\n")

	if h := res.Headline; h != nil {
		info := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		b.WriteString(components.ContentCard("Headline", info.Render(fmt.Sprintf(
			"📈 Your %s costs may %s by %s next month (%s).",
			h.Label, h.Direction, cli.FormatFactor(h.Pct), cli.FormatSignedMoney(h.Delta))), cw))
		b.WriteString("\n")
	}
	b.WriteString(muted.Render(" press e to save " + export.DefaultForecastFile))
	return b.String()
}

func alignCell(s string, w int, right bool) string {
	if right {
		return padCellLeft(s, w)
	}
	return padCell(s, w)
}
