package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/export"
	"github.com/theirongolddev/bburn/internal/logging"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/sheets"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagFile       string
	flagSheet      string
	flagDB         string
	flagTable      string
	flagSample     bool
	flagJSON       bool
	flagLogLevel   string
	flagQuiet      bool
	flagConfigPath string
)

// Set up once per invocation by PersistentPreRunE.
var (
	appConfig config.Config
	logger    *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bburn",
	Short: "Personal budget analysis CLI",
	Long:  "Analyze a budget table: totals, spending ratio, monthly trends, change drivers, and a next-month forecast.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setup()
	},
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFile, "file", "f", "", "Budget file (.csv, .tsv, .txt, .xlsx)")
	pf.StringVarP(&flagSheet, "sheet", "s", "", "Google Sheets link or spreadsheet ID")
	pf.StringVar(&flagDB, "db", "", "SQLite database holding the budget table")
	pf.StringVar(&flagTable, "table", "", "Table to read from --db (defaults to the only table)")
	pf.BoolVar(&flagSample, "sample", false, "Use the built-in sample dataset")
	pf.BoolVar(&flagJSON, "json", false, "Print the full analysis as JSON")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.StringVar(&flagConfigPath, "config", "", "Config file (default "+config.ConfigPath()+")")
}

func setup() error {
	// A missing .env is normal.
	_ = godotenv.Load()

	path := flagConfigPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	appConfig = cfg

	level := flagLogLevel
	if level == "" {
		level = config.GetLogLevel(cfg)
	}
	logger = logging.New(logging.Options{Level: level, Quiet: flagQuiet})

	if !cli.SetCurrency(cfg.Appearance.Currency) {
		logger.Warn("unknown currency, using default", "currency", cfg.Appearance.Currency, "default", cli.Currency())
	}
	return nil
}

// sourceRequest builds the load request from flags, falling back to the
// configured default file.
func sourceRequest() pipeline.Request {
	req := pipeline.Request{
		File:   flagFile,
		Sheet:  flagSheet,
		DB:     flagDB,
		Table:  flagTable,
		Sample: flagSample,
	}
	if req.IsZero() && appConfig.General.DefaultFile != "" {
		req.File = appConfig.General.DefaultFile
	}
	return req
}

// newSheetsClient builds a Sheets client from config. It is only called when
// a sheet is requested so other sources never need credentials.
func newSheetsClient(ctx context.Context) (*sheets.Client, error) {
	return sheets.NewClient(ctx, sheets.Options{
		CredentialsFile: config.GetCredentialsFile(appConfig),
		Timeout:         time.Duration(appConfig.Sheets.TimeoutSecs) * time.Second,
	})
}

// loadSession is the shared data loading path used by all commands.
func loadSession(ctx context.Context) (*pipeline.Session, error) {
	req := sourceRequest()

	var opts pipeline.LoadOptions
	if req.Sheet != "" {
		client, err := newSheetsClient(ctx)
		if err != nil {
			return nil, err
		}
		opts.Sheets = client
	}
	if !flagQuiet {
		opts.Progress = func(stage string) {
			fmt.Fprintf(os.Stderr, "  %s\n", stage)
		}
	}

	start := time.Now()
	sess, err := pipeline.Load(ctx, req, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", req.Describe(), err)
	}
	logger.Debug("loaded source", "source", sess.Source, "rows", sess.Records.Len(), "took", time.Since(start))
	return sess, nil
}

// loadAnalysis loads the requested source and runs the full analysis. It
// reports true when the analysis was already printed as JSON.
func loadAnalysis(cmd *cobra.Command) (model.Analysis, bool, error) {
	sess, err := loadSession(cmd.Context())
	if err != nil {
		return model.Analysis{}, false, err
	}

	a := pipeline.Analyze(sess, pipeline.OptionsFromConfig(appConfig))
	if flagJSON {
		return a, true, export.WriteAnalysisJSON(os.Stdout, a)
	}
	if sess.Empty() {
		printNoData()
	}
	return a, false, nil
}

func printNoData() {
	fmt.Println()
	fmt.Println(cli.Muted("  No data loaded. Pass --file, --sheet, --db, or --sample."))
}

// printMissing names unresolved logical fields that a view needs.
func printMissing(schema model.Schema, fields ...string) bool {
	return fprintMissing(os.Stdout, schema, fields...)
}

func fprintMissing(w io.Writer, schema model.Schema, fields ...string) bool {
	var missing []string
	for _, f := range schema.Missing() {
		for _, want := range fields {
			if f == want {
				missing = append(missing, f)
			}
		}
	}
	if len(missing) == 0 {
		return false
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.Warn(fmt.Sprintf("  No column found for: %s", strings.Join(missing, ", "))))
	fmt.Fprintln(w, cli.Muted("  Rename the column or add an alias under [aliases] in the config."))
	return true
}
