package cmd

import (
	"fmt"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"

	"github.com/spf13/cobra"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "Categories behind each month's spending change",
	RunE:  runDrivers,
}

func init() {
	rootCmd.AddCommand(driversCmd)
}

func runDrivers(cmd *cobra.Command, _ []string) error {
	a, done, err := loadAnalysis(cmd)
	if err != nil || done {
		return err
	}
	if printMissing(a.Schema, model.FieldDate, model.FieldExpense, model.FieldCategory) {
		return nil
	}

	if len(a.Series.Drivers) == 0 {
		fmt.Println("\n  Not enough months to compare.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("WHAT CHANGED  " + a.Source))

	for _, md := range a.Series.Drivers {
		fmt.Println()
		fmt.Printf("  %s %s  Spending %s of %s\n",
			cli.DirectionEmoji(md.Increase()),
			md.Month,
			md.Direction,
			cli.Signed(cli.FormatSignedMoney(md.NetChange), !md.Increase()),
		)

		rows := make([][]string, 0, len(md.Drivers))
		for _, d := range md.Drivers {
			rows = append(rows, []string{
				d.Category,
				cli.Signed(cli.FormatSignedMoney(d.Change), !d.Change.IsPositive()),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Category", "Change"},
			Rows:    rows,
		}))
	}
	fmt.Println()
	return nil
}
