package components

import (
	"strings"

	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Trends", Key: 't', KeyPos: 0},
	{Name: "Drivers", Key: 'd', KeyPos: 0},
	{Name: "Forecast", Key: 'f', KeyPos: 0},
	{Name: "Data", Key: 'a', KeyPos: 1},
}

// tabLabel renders a tab's text without padding. Inactive tabs highlight
// their shortcut letter; keys outside the name are appended as "[k]".
func tabLabel(tab Tab, active bool) string {
	t := theme.Active
	bg := t.Surface
	if active {
		bg = t.SurfaceHover
	}
	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(bg).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(bg).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(bg)

	if active {
		return activeStyle.Render(tab.Name)
	}
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
			keyStyle.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
			inactiveStyle.Render(tab.Name[tab.KeyPos+1:])
	}
	return inactiveStyle.Render(tab.Name) +
		dimStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimStyle.Render("]")
}

func renderTab(tab Tab, active bool) string {
	bg := theme.Active.Surface
	if active {
		bg = theme.Active.SurfaceHover
	}
	pad := lipgloss.NewStyle().Background(bg).Render(" ")
	return pad + tabLabel(tab, active) + pad
}

// TabVisualWidth returns the rendered cell width of a tab, matching
// RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	row := strings.Join(parts, sep)

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
