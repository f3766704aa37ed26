package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// dataState holds the raw data tab state.
type dataState struct {
	cursor int
	offset int
}

// maxColWidth caps one column so wide text cells don't push the rest off screen.
const maxColWidth = 24

// dataRowsFor returns how many rows fit in a content area of height h:
// card border (2) + title + header + footer.
func dataRowsFor(h int) int {
	return max(h-5, 3)
}

// dataVisibleRows approximates the content height the same way viewMain does.
func (a App) dataVisibleRows() int {
	return dataRowsFor(max(a.height-2, minContentHeight))
}

func (a App) renderDataTab(cw, h int) string {
	t := theme.Active
	rs := a.sess.Records

	innerW := components.CardInnerWidth(cw)
	offset := clamp(a.data.offset, 0, max(rs.Len()-1, 0))
	end := min(offset+dataRowsFor(h), rs.Len())

	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = min(lipgloss.Width(col), maxColWidth)
		for _, r := range rs.Rows[offset:end] {
			widths[i] = min(max(widths[i], lipgloss.Width(r[col].String())), maxColWidth)
		}
	}

	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selected := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padCell(truncStr(c, widths[i]), widths[i])
		}
		return truncStr(strings.Join(parts, "  "), innerW)
	}

	var b strings.Builder
	b.WriteString(header.Render(line(rs.Columns)))
	for i := offset; i < end; i++ {
		cells := make([]string, len(rs.Columns))
		for j, col := range rs.Columns {
			cells[j] = rs.Rows[i][col].String()
		}
		b.WriteString("\n")
		if i == a.data.cursor {
			b.WriteString(selected.Render(line(cells)))
		} else {
			b.WriteString(row.Render(line(cells)))
		}
	}
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("row %s of %s", cli.FormatNumber(int64(a.data.cursor+1)), cli.FormatNumber(int64(rs.Len())))))

	return components.ContentCard(a.sess.Source, b.String(), cw)
}
