package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, expenses, balance, and spending ratio",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	a, done, err := loadAnalysis(cmd)
	if err != nil || done {
		return err
	}
	writeSummary(os.Stdout, a, appConfig.General.AdvisoryThreshold)
	return nil
}

// writeSummary renders the summary table and the insights. A missing income
// column only hides the advisory; category and forecast insights stand alone.
func writeSummary(w io.Writer, a model.Analysis, threshold float64) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle("BUDGET SUMMARY  "+a.Source))
	fmt.Fprintln(w)

	m := a.Metrics
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Rows", cli.FormatNumber(int64(a.Rows))},
			{"---"},
			{"Total Income", cli.FormatMoney(m.TotalIncome)},
			{"Total Expenses", cli.FormatMoney(m.TotalExpense)},
			{"Balance", cli.Signed(cli.FormatMoney(m.Balance), !m.Balance.IsNegative())},
			{"---"},
			{"Spend Ratio", cli.FormatPercent(m.SpendRatio)},
		},
	}))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Spent  %s\n", cli.RenderRatioBar(m.SpendRatio, threshold, 30))

	if !fprintMissing(w, a.Schema, model.FieldIncome, model.FieldExpense) && m.Advisory {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+cli.Warn(fmt.Sprintf("You're spending %s of your income. Consider budgeting tweaks.",
			cli.FormatPercent(m.SpendRatio))))
	}

	if top := a.Categories.Top; top != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.Info(fmt.Sprintf("  💡 Your top spending category this cycle is %s at %s.",
			top.Category, cli.FormatMoney(top.Amount))))
	}

	if h := a.Forecast.Headline; h != nil {
		fmt.Fprintln(w, cli.Info(fmt.Sprintf("  📈 Your %s costs may %s by %s next month.",
			h.Label, h.Direction, cli.FormatFactor(h.Pct))))
	}
	fmt.Fprintln(w)
}
