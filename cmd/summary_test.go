package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/source"
)

func analyzeRows(rows [][]string) *bytes.Buffer {
	cfg := config.DefaultConfig()
	sess := pipeline.NewSession(source.FromRows(rows), "budget.csv")
	a := pipeline.Analyze(sess, pipeline.OptionsFromConfig(cfg))

	var buf bytes.Buffer
	writeSummary(&buf, a, cfg.General.AdvisoryThreshold)
	return &buf
}

func TestWriteSummary_NoIncomeColumnKeepsInsights(t *testing.T) {
	out := analyzeRows([][]string{
		{"Date", "Expense Amount", "Expense Category"},
		{"2024-01-05", "50", "Rent"},
		{"2024-01-09", "10", "Food"},
	}).String()

	assert.Contains(t, out, "No column found for: income")
	assert.Contains(t, out, "top spending category this cycle is Rent at $50.00")
	assert.Contains(t, out, "Groceries 🛒 costs may increase by +1.5%")
	assert.NotContains(t, out, "Consider budgeting tweaks")
}

func TestWriteSummary_Advisory(t *testing.T) {
	out := analyzeRows([][]string{
		{"Date", "Income Amount", "Expense Amount", "Expense Category"},
		{"2024-01-01", "100", "", ""},
		{"2024-01-05", "", "90", "Rent"},
	}).String()

	assert.NotContains(t, out, "No column found")
	assert.Contains(t, out, "Consider budgeting tweaks")
	assert.Contains(t, out, "top spending category this cycle is Rent at $90.00")
}
