// Package tui provides the interactive Bubble Tea dashboard for bburn.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SheetsFactory builds a Sheets fetcher on demand, so credentials are only
// needed once a sheet is actually requested.
type SheetsFactory func(ctx context.Context) (pipeline.SheetFetcher, error)

// Options configures NewApp.
type Options struct {
	Request    pipeline.Request
	Config     config.Config
	ConfigPath string
	Sheets     SheetsFactory
	NeedSetup  bool
}

// DataLoadedMsg is sent when a load finishes. On error the previous dataset
// stays in place.
type DataLoadedMsg struct {
	Session  *pipeline.Session
	Request  pipeline.Request
	Err      error
	LoadTime time.Duration
}

// ProgressMsg reports the current load stage.
type ProgressMsg struct {
	Stage string
}

// App is the root Bubble Tea model.
type App struct {
	cfg        config.Config
	configPath string
	sheets     SheetsFactory

	// Data
	sess     *pipeline.Session
	analysis model.Analysis
	lastReq  pipeline.Request
	loaded   bool
	loading  bool
	loadTime time.Duration
	loadErr  error
	notice   string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Load prompt
	prompt    textinput.Model
	prompting bool

	// Per-tab scroll state
	driverScroll int
	data         dataState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
	stage   string
	loadSub chan tea.Msg
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	scrollOverhead   = 6 // header + status bar + card chrome
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		sheets:     opts.Sheets,
		lastReq:    opts.Request,
		needSetup:  opts.NeedSetup,
		prompt:     newLoadPrompt(),
		spinner:    sp,
		loadSub:    make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.lastReq, a.sheets, a.loadSub),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	a.analysis = pipeline.Analyze(a.sess, pipeline.OptionsFromConfig(a.cfg))
	a.driverScroll = 0
	a.data = dataState{}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.prompting {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scroll(-1)
		case tea.MouseButtonWheelDown:
			a.scroll(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case ProgressMsg:
		a.stage = msg.Stage
		return a, waitForLoadMsg(a.loadSub)

	case DataLoadedMsg:
		a.loaded = true
		a.loading = false
		a.stage = ""
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.loadErr = nil
		a.lastReq = msg.Request
		if a.sess == nil {
			a.sess = msg.Session
		} else {
			a.sess.Replace(msg.Session.Records, msg.Session.Source)
		}
		a.recompute()

		if a.needSetup && a.setupForm == nil {
			a.setupVals = NewSetupValues(a.cfg)
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.prompting {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.prompting {
		return a.updatePrompt(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "l":
		a.prompting = true
		a.prompt.SetValue("")
		a.prompt.Focus()
		return a, textinput.Blink
	case "r":
		if a.loading {
			return a, nil
		}
		return a.startLoad(a.lastReq)
	case "e":
		if a.activeTab == tabForecast {
			a.notice, a.loadErr = exportForecast(a.analysis.Forecast)
		}
		return a, nil
	case "j", "down":
		a.scroll(1)
		return a, nil
	case "k", "up":
		a.scroll(-1)
		return a, nil
	case "ctrl+d":
		a.scroll(a.halfPage())
		return a, nil
	case "ctrl+u":
		a.scroll(-a.halfPage())
		return a, nil
	case "g":
		a.scroll(-1 << 30)
		return a, nil
	case "G":
		a.scroll(1 << 30)
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) startLoad(req pipeline.Request) (tea.Model, tea.Cmd) {
	a.loading = true
	a.loadErr = nil
	a.notice = ""
	a.stage = "loading " + req.Describe()
	return a, tea.Batch(loadDataCmd(req, a.sheets, a.loadSub), a.spinner.Tick)
}

func (a App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.prompting = false
		a.prompt.Blur()
		req, ok := requestFromInput(a.prompt.Value())
		if !ok || a.loading {
			return a, nil
		}
		return a.startLoad(req)
	case "esc":
		a.prompting = false
		a.prompt.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.setupVals.Apply(&a.cfg); err != nil {
			a.loadErr = err
		} else if err := config.SaveFile(a.configPath, a.cfg); err != nil {
			a.loadErr = fmt.Errorf("saving config: %w", err)
		} else {
			a.notice = "Saved " + a.configPath
		}
		theme.SetActive(a.cfg.Appearance.Theme)
		cli.SetCurrency(a.cfg.Appearance.Currency)
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) halfPage() int {
	return max((a.height-scrollOverhead)/2, 1)
}

// scroll moves the cursor of the scrollable tabs by delta, clamped.
func (a *App) scroll(delta int) {
	switch a.activeTab {
	case tabDrivers:
		a.driverScroll = clamp(a.driverScroll+delta, 0, max(len(a.analysis.Series.Drivers)-1, 0))
	case tabData:
		a.data.cursor = clamp(a.data.cursor+delta, 0, max(a.analysis.Rows-1, 0))
		visible := a.dataVisibleRows()
		if a.data.cursor < a.data.offset {
			a.data.offset = a.data.cursor
		}
		if a.data.cursor >= a.data.offset+visible {
			a.data.offset = a.data.cursor - visible + 1
		}
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  bburn needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	stage := a.stage
	if stage == "" {
		stage = "loading " + a.lastReq.Describe()
	}

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ bburn"))
	b.WriteString(subtitleStyle.Render(" · Budget Analysis"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" " + stage))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o t d f a", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Scroll drivers / rows"},
			{"^d ^u", "Half-page scroll"},
			{"g G", "Top / Bottom"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"l", "Load a file, sheet link, or \"sample\""},
			{"r", "Reload current source"},
			{"e", "Export forecast CSV (Forecast tab)"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusInfo() string {
	switch {
	case a.loading:
		return a.spinner.View() + " " + a.stage
	case a.notice != "":
		return a.notice
	}
	return fmt.Sprintf("%s · %s rows · %.1fs", a.analysis.Source, cli.FormatNumber(int64(a.analysis.Rows)), a.loadTime.Seconds())
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	if a.prompting {
		header += "\n" + lipgloss.NewStyle().Background(t.Surface).Width(w).Render(" Load: "+a.prompt.View())
	}

	errMsg := ""
	if a.loadErr != nil {
		errMsg = a.loadErr.Error()
	}
	statusBar := components.RenderStatusBar(w, a.statusInfo(), errMsg)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	if a.sess.Empty() {
		content = a.renderEmpty(cw)
	} else {
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabTrends:
			content = a.renderTrendsTab(cw)
		case tabDrivers:
			content = a.renderDriversTab(cw, contentH)
		case tabForecast:
			content = a.renderForecastTab(cw)
		case tabData:
			content = a.renderDataTab(cw, contentH)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderEmpty(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	body := muted.Render("No data loaded. Press ") + accent.Render("l") +
		muted.Render(" and enter a CSV/XLSX path, a Google Sheets link, or \"sample\".")
	return components.ContentCard("Get started", body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
