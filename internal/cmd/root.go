package cmd

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/config"
	"github.com/doclens/doclens/internal/ui"
)

var (
	// Global flags
	verbose   bool
	format    string
	cfgFile   string
	wpm       int
	exemption float64
	topN      int
)

// ErrGateFailed marks a run where at least one configured quality gate
// failed. The process maps it to exit code 1; every other error is a
// configuration or I/O problem and exits 2.
var ErrGateFailed = errors.New("quality gate failed")

var RootCmd = &cobra.Command{
	Use:   "doclens",
	Short: "A readability analyzer for markdown documentation",
	Long: `doclens computes readability grade level, Flesch reading ease,
technical density, and reading time for markdown documents, aggregates
them into directory-level reports, and enforces type-specific quality
gates (for example "README at most grade 12, Flesch at least 40").

Code- and table-heavy documents are exempted from readability ceilings
via a structural exemption, so reference material is never punished for
being precise.`,
}

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default .doclens.yaml)")
	RootCmd.PersistentFlags().IntVar(&wpm, "wpm", 200, "Reading speed in words per minute")
	RootCmd.PersistentFlags().Float64Var(&exemption, "exemption", 80, "Technical density percentage above which thresholds are structurally exempt")
	RootCmd.PersistentFlags().IntVar(&topN, "top", 5, "Length of ranked lists in directory reports")
}

// getUI builds the UI for the current format flag and TTY state.
func getUI() *ui.UI {
	return ui.New(os.Stdout, os.Stderr, format)
}

// newLogger builds the diagnostic logger. Warnings go to stderr so stdout
// stays machine-parseable in JSON mode.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the run configuration and applies explicit flag
// overrides. Any failure here is fatal: no document is analyzed.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("wpm") {
		cfg.WordsPerMinute = wpm
	}
	if cmd.Flags().Changed("exemption") {
		cfg.ExemptionPercent = exemption
	}
	if cmd.Flags().Changed("top") {
		cfg.TopN = topN
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
