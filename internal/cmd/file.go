package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/aggregate"
	"github.com/doclens/doclens/internal/analyze"
	"github.com/doclens/doclens/internal/gate"
	"github.com/doclens/doclens/internal/reporter"
)

// fileDefaultGates is the fast-path gate set for pre-commit hooks.
var fileDefaultGates = []string{"no-violations"}

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Analyze a single markdown document",
	Long: `Analyze one document and print its metrics, complexity tier, and
any threshold violations. Intended as the fast path for pre-commit hooks.

Examples:
  doclens analyze file README.md
  doclens analyze file --format json docs/guide.md`,
	Args:         cobra.ExactArgs(1),
	RunE:         runFile,
	SilenceUsage: true,
}

func init() {
	analyzeCmd.AddCommand(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := &gate.Context{Config: cfg}
	registry := gate.DefaultRegistry(cfg)
	gates, err := registry.Select(gatesSpec, fileDefaultGates)
	if err != nil {
		return err
	}
	if err := gate.Validate(gates, ctx); err != nil {
		return err
	}

	a := analyze.New(cfg, newLogger())
	result, err := a.File(args[0])
	if err != nil {
		return err
	}

	summary := aggregate.New(cfg.TopN)
	summary.Add(result)
	ctx.Summary = summary

	results, passed := gate.Evaluate(gates, ctx)

	report := &reporter.Report{
		Scope:     args[0],
		Mode:      "file",
		Documents: []aggregate.DocResult{result},
		Gates:     results,
		Passed:    passed,
	}

	if err := render(report); err != nil {
		return err
	}
	if !passed {
		return ErrGateFailed
	}
	return nil
}
