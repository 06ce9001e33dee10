// Package root contains the root command for the application
package root

import (
	"banktocfo/cfopack/internal/batch"
	"banktocfo/cfopack/internal/categorizer"
	"banktocfo/cfopack/internal/config"
	"banktocfo/cfopack/internal/csvparser"
	"banktocfo/cfopack/internal/parser"
	"banktocfo/cfopack/internal/pdfparser"
	"banktocfo/cfopack/internal/report"
	"banktocfo/cfopack/internal/server"
	"banktocfo/cfopack/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the resolved application configuration, loaded before any
	// command runs.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cfopack",
		Short: "Convert bank statements into a categorized CFO pack workbook.",
		Long: `cfopack parses bank statements (CSV or PDF), categorizes every
transaction with a keyword rulebook, and renders an Excel workbook with
dashboard, monthly and category analysis sheets.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cfopack!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}
			Cfg = cfg

			// Set the configured logger for all pipeline stages
			batch.SetLogger(Log)
			parser.SetLogger(Log)
			csvparser.SetLogger(Log)
			pdfparser.SetLogger(Log)
			categorizer.SetLogger(Log)
			report.SetLogger(Log)
			server.SetLogger(Log)
			store.SetLogger(Log)
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// NewRouter builds the statement router from the resolved configuration.
// PDF parsing is only wired when a Gemini API key is available; CSV parsing
// always works.
func NewRouter() *parser.Router {
	var pdf parser.StatementParser
	if Cfg.AI.APIKey != "" {
		extractor, err := pdfparser.NewGeminiExtractor(Cfg.AI.APIKey, Cfg.AI.Model, Cfg.AITimeout())
		if err != nil {
			Log.WithError(err).Warn("PDF parsing disabled")
		} else {
			pdf = pdfparser.NewParser(pdfparser.NewPopplerRasterizer(Cfg.PDF.RasterDPI), extractor)
		}
	} else {
		Log.Debug("No GEMINI_API_KEY set, PDF parsing disabled")
	}
	return parser.NewRouter(pdf)
}

// NewCategorizer builds the categorizer, preferring rules from the
// configured override file and falling back to the built-in rulebook.
func NewCategorizer() *categorizer.Categorizer {
	rules, err := store.NewRuleStore(Cfg.Categories.File).LoadRules()
	if err != nil {
		Log.WithError(err).Warn("Failed to load category rules, using built-in rulebook")
		return categorizer.New()
	}
	return categorizer.NewWithRules(rules)
}
