package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// Currencies offered by the setup form.
var setupCurrencies = []string{"USD", "EUR", "GBP", "BRL", "CAD", "AUD", "JPY", "INR"}

// SetupValues backs the setup form fields.
type SetupValues struct {
	DefaultFile     string
	Currency        string
	Theme           string
	Threshold       string
	CredentialsFile string
}

// NewSetupValues seeds the form from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		DefaultFile:     cfg.General.DefaultFile,
		Currency:        cfg.Appearance.Currency,
		Theme:           cfg.Appearance.Theme,
		Threshold:       strconv.FormatFloat(cfg.General.AdvisoryThreshold, 'f', -1, 64),
		CredentialsFile: cfg.Sheets.CredentialsFile,
	}
}

// NewSetupForm builds the first-run wizard.
func NewSetupForm(vals *SetupValues) *huh.Form {
	currencyOpts := make([]huh.Option[string], 0, len(setupCurrencies))
	for _, c := range setupCurrencies {
		currencyOpts = append(currencyOpts, huh.NewOption(c, c))
	}
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to bburn!").
				Description("Budget analysis for CSV, Excel, SQLite, and Google Sheets.\nA few questions and you're set."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default budget file").
				Description("Loaded when no --file, --sheet, or --db is given. Leave blank to skip.").
				Placeholder("~/budget.csv").
				Value(&vals.DefaultFile),
			huh.NewInput().
				Title("Google service account key").
				Description("JSON key file for reading sheets. GOOGLE_APPLICATION_CREDENTIALS overrides it.").
				Value(&vals.CredentialsFile),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencyOpts...).
				Value(&vals.Currency),
			huh.NewInput().
				Title("Spending advisory threshold (% of income)").
				Value(&vals.Threshold).
				Validate(validateThreshold),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateThreshold(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number, e.g. 85")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// Apply copies the form values into cfg.
func (v *SetupValues) Apply(cfg *config.Config) error {
	if err := validateThreshold(v.Threshold); err != nil {
		return fmt.Errorf("advisory threshold: %w", err)
	}
	threshold, _ := strconv.ParseFloat(strings.TrimSpace(v.Threshold), 64)

	cfg.General.DefaultFile = strings.TrimSpace(v.DefaultFile)
	cfg.General.AdvisoryThreshold = threshold
	cfg.Sheets.CredentialsFile = strings.TrimSpace(v.CredentialsFile)
	if v.Currency != "" {
		cfg.Appearance.Currency = v.Currency
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return nil
}
