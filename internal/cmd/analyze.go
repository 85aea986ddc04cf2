package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/reporter"
)

var gatesSpec string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze markdown documents for readability",
	Long: `Analyze computes per-document readability metrics and evaluates
quality gates.

Examples:
  doclens analyze file README.md
  doclens analyze dir docs/
  doclens analyze dir --format json docs/ > report.json`,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&gatesSpec, "gates", "",
		"Comma-separated gates to evaluate (none to disable)")
	RootCmd.AddCommand(analyzeCmd)
}

// render writes the report in the format the UI detected.
func render(report *reporter.Report) error {
	u := getUI()
	var rep reporter.Reporter
	if u.IsJSON() {
		rep = reporter.NewJSONReporter(os.Stdout)
	} else {
		rep = reporter.NewTerminalReporter(os.Stdout, u.Styles)
	}
	return rep.Report(report)
}
