// Package cmd implements the bburn CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bburn/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	path := flagConfigPath
	if path == "" {
		path = config.ConfigPath()
	}
	fmt.Printf("  Config file: %s\n", path)
	if flagConfigPath != "" || config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DefaultFile != "" {
		fmt.Printf("    Default file:       %s\n", cfg.General.DefaultFile)
	} else {
		fmt.Println("    Default file:       not set")
	}
	fmt.Printf("    Advisory threshold: %.0f%%\n", cfg.General.AdvisoryThreshold)
	fmt.Printf("    Log level:          %s\n", config.GetLogLevel(cfg))
	fmt.Println()

	fmt.Println("  [Aliases]")
	fmt.Printf("    Date:     %s\n", strings.Join(cfg.Aliases.Date, ", "))
	fmt.Printf("    Income:   %s\n", strings.Join(cfg.Aliases.Income, ", "))
	fmt.Printf("    Expense:  %s\n", strings.Join(cfg.Aliases.Expense, ", "))
	fmt.Printf("    Category: %s\n", strings.Join(cfg.Aliases.Category, ", "))
	fmt.Println()

	fmt.Println("  [Forecast]")
	for _, e := range cfg.Forecast {
		fmt.Printf("    %-18s %+.1f%%  (%s)\n", e.Label, e.Pct*100, strings.Join(e.Aliases, ", "))
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Currency: %s\n", cfg.Appearance.Currency)
	fmt.Println()

	fmt.Println("  [Sheets]")
	if creds := config.GetCredentialsFile(cfg); creds != "" {
		fmt.Printf("    Credentials: %s\n", creds)
	} else {
		fmt.Println("    Credentials: not configured")
	}
	fmt.Printf("    Timeout:     %ds\n", cfg.Sheets.TimeoutSecs)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:    %s\n", cfg.Server.Addr)
	fmt.Printf("    Max upload: %d MB\n", cfg.Server.MaxUploadMB)
	fmt.Println()

	fmt.Println("  Run `bburn setup` to reconfigure.")
	return nil
}
