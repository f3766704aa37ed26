package cmd

import (
	"fmt"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Monthly expense table with month-over-month change",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, _ []string) error {
	a, done, err := loadAnalysis(cmd)
	if err != nil || done {
		return err
	}
	if printMissing(a.Schema, model.FieldDate, model.FieldExpense, model.FieldCategory) {
		return nil
	}

	ts := a.Series
	if ts.Empty() {
		fmt.Println("\n  No dated expense rows to chart.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTHLY SPENDING  " + a.Source))
	fmt.Println()

	values := make([]float64, 0, len(ts.Months))
	rows := make([][]string, 0, len(ts.Months))
	for _, m := range ts.Months {
		change := cli.Muted("-")
		if m.HasChange {
			change = cli.Signed(cli.FormatSignedMoney(m.Change), !m.Change.IsPositive())
		}
		rows = append(rows, []string{
			cli.FormatMonth(m.Month),
			cli.FormatMoney(m.Expense),
			change,
		})
		values = append(values, m.Expense.InexactFloat64())
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Expenses", "Change"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Trend  %s\n", cli.RenderSparkline(values))

	if ts.Dropped > 0 {
		fmt.Println(cli.Muted("  " + cli.FormatSkippedDates(ts.Dropped)))
	}
	fmt.Println()
	return nil
}
