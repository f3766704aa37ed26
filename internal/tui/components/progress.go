package components

import (
	"fmt"

	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForRatio returns the gauge color for a spend ratio (percent of
// income): green well below the advisory threshold, orange near it, red above.
func ColorForRatio(pct, warnAt float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct > warnAt:
		return t.Loss
	case pct > warnAt*0.8:
		return t.Warn
	default:
		return t.Gain
	}
}

// SpendGauge renders a labelled bar showing pct of income spent.
func SpendGauge(label string, pct, warnAt float64, labelW, barWidth int) string {
	t := theme.Active
	color := ColorForRatio(pct, warnAt)

	frac := min(max(pct/100, 0), 1)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		space.Render(" ") +
		bar.ViewAs(frac) +
		space.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}
