package cmd

import (
	"fmt"

	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/server"

	"github.com/spf13/cobra"
)

var (
	flagAddr      string
	flagNoSheets  bool
	flagMaxUpload int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve budget analysis over HTTP",
	Long:  "Run an HTTP API that analyzes uploaded CSV/XLSX files, the sample dataset, or Google Sheets links.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8731)")
	serveCmd.Flags().IntVar(&flagMaxUpload, "max-upload-mb", 0, "Upload size limit in MB (default from config)")
	serveCmd.Flags().BoolVar(&flagNoSheets, "no-sheets", false, "Disable the Google Sheets endpoint")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagMaxUpload > 0 {
		cfg.Server.MaxUploadMB = flagMaxUpload
	}

	scfg := server.Config{
		Addr:           cfg.Server.Addr,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		Analysis:       pipeline.OptionsFromConfig(cfg),
	}
	if !flagNoSheets {
		// The token source keeps this context, so it must live as long as the server.
		if client, err := newSheetsClient(cmd.Context()); err != nil {
			logger.Warn("sheets endpoint disabled", "err", err)
		} else {
			scfg.Sheets = client
		}
	}

	fmt.Printf("  bburn API listening on http://%s\n", scfg.Addr)
	return server.New(scfg, logger.WithPrefix("bburn/http")).Run(cmd.Context())
}
