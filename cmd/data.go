package cmd

import (
	"fmt"

	"github.com/theirongolddev/bburn/internal/cli"

	"github.com/spf13/cobra"
)

var flagLimit int

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Show the loaded rows",
	RunE:  runData,
}

func init() {
	dataCmd.Flags().IntVarP(&flagLimit, "limit", "l", 50, "Maximum rows to show (0 for all)")
	rootCmd.AddCommand(dataCmd)
}

func runData(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd.Context())
	if err != nil {
		return err
	}
	rs := sess.Records
	if sess.Empty() {
		printNoData()
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DATA  %s  (%s rows)", sess.Source, cli.FormatNumber(int64(rs.Len())))))
	fmt.Println()

	n := rs.Len()
	if flagLimit > 0 && n > flagLimit {
		n = flagLimit
	}
	rows := make([][]string, 0, n)
	for _, r := range rs.Rows[:n] {
		cells := make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			cells[i] = r[col].String()
		}
		rows = append(rows, cells)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: rs.Columns,
		Rows:    rows,
	}))
	if n < rs.Len() {
		fmt.Println(cli.Muted(fmt.Sprintf("  ... %d more rows (use --limit 0 to show all)", rs.Len()-n)))
	}
	fmt.Println()
	return nil
}
