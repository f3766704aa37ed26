package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bburn/internal/tui/theme"
)

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	want := []int{4, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LayoutRow(10, 3) = %v, want %v", got, want)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Income", Value: "$18,800.00"},
		{Label: "Expenses", Value: "$12,400.00", Note: "66.0% of income"},
	}, 60)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d width = %d, want 60", i, w)
		}
	}
}

func TestColumnChart(t *testing.T) {
	chart := ColumnChart([]float64{100, 200, 50}, []string{"Jan", "Feb", "Mar"}, theme.Active.Bar, 40, 6)
	lines := strings.Split(chart, "\n")
	// rows + axis + labels
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), chart)
	}
	if !strings.Contains(lines[len(lines)-1], "Feb") {
		t.Errorf("missing x labels: %q", lines[len(lines)-1])
	}
}

func TestColumnChartFallsBackToSparkline(t *testing.T) {
	got := ColumnChart([]float64{1, 2, 3}, nil, theme.Active.Bar, 10, 2)
	if strings.Contains(got, "\n") {
		t.Errorf("small chart should be a single sparkline, got %q", got)
	}
	if ColumnChart(nil, nil, theme.Active.Bar, 40, 6) != "" {
		t.Error("empty values should render nothing")
	}
}

func TestHBarWidth(t *testing.T) {
	full := HBar("Groceries", 12, 100, 100, 20, "$100.00")
	half := HBar("Utilities", 12, 50, 100, 20, "$100.00")
	if lipgloss.Width(full) != lipgloss.Width(half) {
		t.Errorf("bars should align: %d vs %d", lipgloss.Width(full), lipgloss.Width(half))
	}
	if got := strings.Count(full, "█"); got != 20 {
		t.Errorf("full bar has %d blocks, want 20", got)
	}
}

func TestFitLabel(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := fitLabel(tt.in, tt.w); got != tt.want {
			t.Errorf("fitLabel(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestColorForRatio(t *testing.T) {
	th := theme.Active
	if ColorForRatio(50, 85) != th.Gain {
		t.Error("50% should be gain color")
	}
	if ColorForRatio(80, 85) != th.Warn {
		t.Error("80% should be warn color")
	}
	if ColorForRatio(90, 85) != th.Loss {
		t.Error("90% should be loss color")
	}
}

func TestTabVisualWidth(t *testing.T) {
	for i, tab := range Tabs {
		if got, want := TabVisualWidth(tab, false), len(tab.Name)+2; got != want {
			t.Errorf("tab %d inactive width = %d, want %d", i, got, want)
		}
		if got, want := TabVisualWidth(tab, true), len(tab.Name)+2; got != want {
			t.Errorf("tab %d active width = %d, want %d", i, got, want)
		}
	}
	if TabIdxByKey('f') != 3 || TabIdxByKey('z') != -1 {
		t.Error("TabIdxByKey mismatch")
	}
}

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar(80, "sample data · 6 rows", "")
	if lipgloss.Width(bar) != 80 {
		t.Errorf("width = %d, want 80", lipgloss.Width(bar))
	}
	if !strings.Contains(RenderStatusBar(80, "info", "boom"), "boom") {
		t.Error("error message should replace info")
	}
}
