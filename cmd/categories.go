package cmd

import (
	"fmt"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Spending by category",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	a, done, err := loadAnalysis(cmd)
	if err != nil || done {
		return err
	}
	if printMissing(a.Schema, model.FieldCategory, model.FieldExpense) {
		return nil
	}

	totals := a.Categories.Totals
	if len(totals) == 0 {
		fmt.Println("\n  No categorized expenses.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING BY CATEGORY  " + a.Source))
	fmt.Println()

	labelWidth := 0
	maxValue := 0.0
	for _, t := range totals {
		labelWidth = max(labelWidth, lipgloss.Width(t.Category))
		maxValue = max(maxValue, t.Amount.InexactFloat64())
	}
	for _, t := range totals {
		fmt.Println(cli.RenderHorizontalBar(t.Category, labelWidth,
			t.Amount.InexactFloat64(), maxValue, 30, cli.FormatMoney(t.Amount)))
	}

	if top := a.Categories.Top; top != nil {
		fmt.Println()
		fmt.Println(cli.Info(fmt.Sprintf("  💡 Your top spending category this cycle is %s at %s.",
			top.Category, cli.FormatMoney(top.Amount))))
	}
	fmt.Println()
	return nil
}
