package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/bburn/internal/export"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/sheets"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newLoadPrompt() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "budget.csv, budget.xlsx, a Google Sheets link, or sample"
	ti.CharLimit = 512
	ti.Width = 60
	return ti
}

// requestFromInput interprets what the user typed into the load prompt.
func requestFromInput(s string) (pipeline.Request, bool) {
	s = strings.TrimSpace(s)
	ext := strings.ToLower(filepath.Ext(s))

	switch {
	case s == "":
		return pipeline.Request{}, false
	case strings.EqualFold(s, "sample"):
		return pipeline.Request{Sample: true}, true
	case strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://"):
		return pipeline.Request{Sheet: s}, true
	case ext == ".db" || ext == ".sqlite" || ext == ".sqlite3":
		return pipeline.Request{DB: s}, true
	case ext == "":
		if _, err := sheets.ParseRef(s); err == nil {
			return pipeline.Request{Sheet: s}, true
		}
	}
	return pipeline.Request{File: s}, true
}

// loadDataCmd runs the loader in a background goroutine. It streams
// ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(req pipeline.Request, factory SheetsFactory, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()
			ctx := context.Background()

			// Non-blocking so a slow UI never stalls the loader.
			opts := pipeline.LoadOptions{
				Progress: func(stage string) {
					select {
					case sub <- ProgressMsg{Stage: stage}:
					default:
					}
				},
			}
			if req.Sheet != "" && factory != nil {
				fetcher, err := factory(ctx)
				if err != nil {
					sub <- DataLoadedMsg{Request: req, Err: err, LoadTime: time.Since(start)}
					return
				}
				opts.Sheets = fetcher
			}

			sess, err := pipeline.Load(ctx, req, opts)
			sub <- DataLoadedMsg{Session: sess, Request: req, Err: err, LoadTime: time.Since(start)}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// exportForecast writes the forecast CSV into the working directory and
// returns a status line.
func exportForecast(res model.ForecastResult) (string, error) {
	f, err := os.Create(export.DefaultForecastFile)
	if err != nil {
		return "", err
	}
	if err := export.WriteForecastCSV(f, res); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return "Saved " + export.DefaultForecastFile, nil
}
