// Package export serialises analysis results for download.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
)

// DefaultForecastFile is the suggested download name.
const DefaultForecastFile = "market_forecast.csv"

// ForecastLine is one row of the forecast summary as shown to the user.
type ForecastLine struct {
	Category  string `csv:"Category"`
	Spent     string `csv:"You Spent"`
	Forecast  string `csv:"Forecast"`
	Projected string `csv:"Est. Next Month"`
	Change    string `csv:"Change"`
}

// ForecastHeader lists the summary columns in order.
var ForecastHeader = []string{"Category", "You Spent", "Forecast", "Est. Next Month", "Change"}

// ForecastLines formats forecast rows with the active currency.
func ForecastLines(res model.ForecastResult) []ForecastLine {
	lines := make([]ForecastLine, 0, len(res.Rows))
	for _, r := range res.Rows {
		lines = append(lines, ForecastLine{
			Category:  r.Label,
			Spent:     cli.FormatMoney(r.Current),
			Forecast:  cli.FormatFactor(r.Pct),
			Projected: cli.FormatMoney(r.Projected),
			Change:    cli.FormatSignedMoney(r.Delta),
		})
	}
	return lines
}

// Cells returns the line in ForecastHeader order.
func (l ForecastLine) Cells() []string {
	return []string{l.Category, l.Spent, l.Forecast, l.Projected, l.Change}
}

// WriteForecastCSV writes the forecast summary as CSV with a header row.
// An empty result still writes the header.
func WriteForecastCSV(w io.Writer, res model.ForecastResult) error {
	lines := ForecastLines(res)
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, strings.Join(ForecastHeader, ","))
		return err
	}
	if err := gocsv.Marshal(&lines, w); err != nil {
		return fmt.Errorf("writing forecast csv: %w", err)
	}
	return nil
}

// ForecastCSV returns the forecast summary as a CSV string.
func ForecastCSV(res model.ForecastResult) (string, error) {
	var b strings.Builder
	if err := WriteForecastCSV(&b, res); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteForecastXLSX writes the forecast summary as a one-sheet workbook.
// Amount columns hold numbers so the sheet can be recalculated.
func WriteForecastXLSX(w io.Writer, res model.ForecastResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Forecast"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("writing forecast xlsx: %w", err)
	}

	header := make([]any, len(ForecastHeader))
	for i, h := range ForecastHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing forecast xlsx: %w", err)
	}

	for i, r := range res.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.Label,
			r.Current.InexactFloat64(),
			r.Pct.InexactFloat64(),
			r.Projected.InexactFloat64(),
			r.Delta.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing forecast xlsx: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing forecast xlsx: %w", err)
	}
	return nil
}
