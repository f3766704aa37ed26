package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// ColumnChart renders one vertical bar per value with a y-axis and labels
// under each bar. Charts too small to draw fall back to a sparkline.
func ColumnChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	step := chartTickStep(peak)
	ceiling := math.Max(step, math.Ceil(peak/step)*step)

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	n := len(values)
	barW := min(max((width-yLabelW-1-(n-1))/n, 1), 8)

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatChartLabel(ceiling)
		} else if row == (height+1)/2 {
			label = formatChartLabel(top)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(space.Render(" "))
			}
			switch {
			case v >= top:
				b.WriteString(bar.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(sparkBlocks)))
				idx = min(max(idx, 0), len(sparkBlocks)-1)
				b.WriteString(bar.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(space.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + n - 1
	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(space.Render(strings.Repeat(" ", yLabelW+1)))
		for i, l := range labels {
			if i > 0 {
				b.WriteString(space.Render(" "))
			}
			b.WriteString(axis.Render(fitLabel(l, barW)))
		}
	}
	return b.String()
}

// HBar renders one row of a horizontal bar chart: label, bar, value text.
func HBar(label string, labelW int, value, peak float64, barW int, valueText string) string {
	t := theme.Active

	n := 0
	if peak > 0 {
		n = int(value / peak * float64(barW))
	}
	n = min(max(n, 0), barW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Bar).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fitLabel(label, labelW)) +
		space.Render(" ") +
		barStyle.Render(strings.Repeat("█", n)) +
		space.Render(strings.Repeat(" ", barW-n+1)) +
		valueStyle.Render(valueText)
}

// fitLabel truncates or pads s to exactly w cells.
func fitLabel(s string, w int) string {
	if w <= 0 {
		return ""
	}
	runes := []rune(s)
	if lipgloss.Width(s) > w {
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// chartTickStep computes a round tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
