package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/export"
	"github.com/theirongolddev/bburn/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagExport string
	flagLabel  string
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Next-month spending forecast by category",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().StringVar(&flagExport, "export", "", "Write the forecast summary to a .csv or .xlsx file")
	forecastCmd.Flags().Lookup("export").NoOptDefVal = export.DefaultForecastFile
	forecastCmd.Flags().StringVar(&flagLabel, "label", "", "Only forecast the entry with this label")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	if flagLabel != "" {
		entry, ok := config.LookupForecast(appConfig.Forecast, flagLabel)
		if !ok {
			labels := make([]string, 0, len(appConfig.Forecast))
			for _, e := range appConfig.Forecast {
				labels = append(labels, fmt.Sprintf("%q", e.Label))
			}
			return fmt.Errorf("no forecast entry %q (have %s)", flagLabel, strings.Join(labels, ", "))
		}
		appConfig.Forecast = []config.ForecastEntry{entry}
	}

	a, done, err := loadAnalysis(cmd)
	if err != nil || done {
		return err
	}
	if printMissing(a.Schema, model.FieldCategory, model.FieldExpense) {
		return nil
	}

	res := a.Forecast
	if len(res.Rows) == 0 {
		fmt.Println("\n  No categories match a forecast entry.")
	} else {
		fmt.Println()
		fmt.Println(cli.RenderTitle("NEXT MONTH FORECAST  " + a.Source))
		fmt.Println()

		rows := make([][]string, 0, len(res.Rows))
		for _, l := range export.ForecastLines(res) {
			rows = append(rows, l.Cells())
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: export.ForecastHeader,
			Rows:    rows,
		}))

		if h := res.Headline; h != nil {
			fmt.Println()
			fmt.Println(cli.Info(fmt.Sprintf("  📈 Your %s costs may %s by %s next month (%s).",
				h.Label, h.Direction, cli.FormatFactor(h.Pct), cli.FormatSignedMoney(h.Delta))))
		}
	}

	if flagExport != "" {
		if err := writeForecastFile(flagExport, res); err != nil {
			return err
		}
		fmt.Printf("\n  Saved forecast to %s\n", flagExport)
	}
	fmt.Println()
	return nil
}

func writeForecastFile(path string, res model.ForecastResult) error {
	f, err := os.Create(path) //nolint:gosec // user-supplied output path
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = export.WriteForecastXLSX(f, res)
	default:
		err = export.WriteForecastCSV(f, res)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
