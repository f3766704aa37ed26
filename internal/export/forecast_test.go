package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
)

func sampleForecast() model.ForecastResult {
	totals := []model.CategoryTotal{
		{Category: "Groceries", Amount: decimal.NewFromInt(4200)},
		{Category: "Transportation", Amount: decimal.NewFromInt(4050)},
		{Category: "Utilities", Amount: decimal.NewFromInt(4150)},
	}
	return pipeline.Forecast(totals, config.DefaultForecast())
}

func TestForecastCSV(t *testing.T) {
	out, err := ForecastCSV(sampleForecast())
	require.NoError(t, err)

	want := strings.Join([]string{
		"Category,You Spent,Forecast,Est. Next Month,Change",
		`Groceries 🛒,"$4,200.00",+1.5%,"$4,263.00",+$63.00`,
		`Transportation 🚗,"$4,050.00",-0.8%,"$4,017.60",-$32.40`,
		`Utilities ⚡,"$4,150.00",+2.2%,"$4,241.30",+$91.30`,
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestForecastCSV_Empty(t *testing.T) {
	out, err := ForecastCSV(model.ForecastResult{})
	require.NoError(t, err)
	assert.Equal(t, "Category,You Spent,Forecast,Est. Next Month,Change\n", out)
}

func TestWriteForecastXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteForecastXLSX(&buf, sampleForecast()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Forecast"}, f.GetSheetList())
	rows, err := f.GetRows("Forecast")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, ForecastHeader, rows[0])
	assert.Equal(t, "Utilities ⚡", rows[3][0])
	assert.Equal(t, "91.3", rows[3][4])
}

func TestWriteAnalysisJSON(t *testing.T) {
	var buf bytes.Buffer
	a := model.Analysis{Source: "sample data", Rows: 6, Forecast: sampleForecast()}

	require.NoError(t, WriteAnalysisJSON(&buf, a))

	out := buf.String()
	assert.Contains(t, out, `"source": "sample data"`)
	assert.Contains(t, out, `"label": "Utilities ⚡"`)
	assert.Contains(t, out, `"direction": "increase"`)
}
