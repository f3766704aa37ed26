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

// renderDriversTab lists each month's breakdown, starting at the scroll
// position so long histories page with j/k.
func (a App) renderDriversTab(cw, h int) string {
	t := theme.Active
	drivers := a.analysis.Series.Drivers
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(drivers) == 0 {
		return components.ContentCard("What Changed",
			muted.Render("Needs at least two months with a category change."), cw)
	}

	start := clamp(a.driverScroll, 0, len(drivers)-1)
	var b strings.Builder
	used := 0
	for _, md := range drivers[start:] {
		card := components.ContentCard(driverTitle(md), renderDriverRows(md), cw)
		used += lipgloss.Height(card)
		if used > h && b.Len() > 0 {
			break
		}
		b.WriteString(card)
		b.WriteString("\n")
	}
	b.WriteString(muted.Render(fmt.Sprintf(" month %d of %d  (j/k to scroll)", start+1, len(drivers))))
	return b.String()
}

func driverTitle(md model.MonthDrivers) string {
	return fmt.Sprintf("%s %s  Spending %s of %s",
		cli.DirectionEmoji(md.Increase()), md.Month, md.Direction, cli.FormatSignedMoney(md.NetChange))
}

func renderDriverRows(md model.MonthDrivers) string {
	t := theme.Active
	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	name := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	nameW := len("Category")
	for _, d := range md.Drivers {
		nameW = max(nameW, lipgloss.Width(d.Category))
	}

	var b strings.Builder
	b.WriteString(header.Render(padCell("Category", nameW) + "  " + padCellLeft("Change", 14)))
	for _, d := range md.Drivers {
		change := lipgloss.NewStyle().Foreground(t.Signed(!d.Change.IsPositive())).Background(t.Surface)
		b.WriteString("\n")
		b.WriteString(name.Render(padCell(d.Category, nameW)))
		b.WriteString(space.Render("  "))
		b.WriteString(change.Render(padCellLeft(cli.FormatSignedMoney(d.Change), 14)))
	}
	return b.String()
}
