package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/tui"
	"github.com/theirongolddev/bburn/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appConfig.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	path := flagConfigPath
	if path == "" {
		path = config.ConfigPath()
	}
	_, statErr := os.Stat(path)

	app := tui.NewApp(tui.Options{
		Request:    sourceRequest(),
		Config:     appConfig,
		ConfigPath: path,
		NeedSetup:  os.IsNotExist(statErr),
		Sheets: func(ctx context.Context) (pipeline.SheetFetcher, error) {
			return newSheetsClient(ctx)
		},
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
