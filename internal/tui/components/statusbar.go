package components

import (
	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. A non-empty errMsg replaces
// the source info on the right and is shown in the loss color.
func RenderStatusBar(width int, info, errMsg string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	left := " [l]oad  [r]eload  [?]help  [q]uit"

	right := info + " "
	rightStyle := base
	if errMsg != "" {
		right = errMsg + " "
		rightStyle = rightStyle.Foreground(t.Loss)
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := base.Render(left) + base.Render(spaces(padding)) + rightStyle.Render(right)
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
