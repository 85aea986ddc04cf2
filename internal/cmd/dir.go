package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/analyze"
	"github.com/doclens/doclens/internal/gate"
	"github.com/doclens/doclens/internal/reporter"
	"github.com/doclens/doclens/internal/ui"
)

var (
	baselinePath  string
	writeBaseline string
)

// dirDefaultGates is the full-corpus gate set for CI runs.
var dirDefaultGates = []string{"no-violations"}

var dirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Analyze every markdown document under a directory",
	Long: `Analyze a directory tree and print a corpus summary: document
count, average reading time, average grade level, average technical
density, the tier distribution, and ranked lists of the longest and most
complex documents.

Examples:
  doclens analyze dir docs/
  doclens analyze dir --gates no-violations,avg-grade docs/
  doclens analyze dir --baseline report.json --gates grade-trend docs/`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runDir,
	SilenceUsage: true,
}

func init() {
	dirCmd.Flags().StringVar(&baselinePath, "baseline", "",
		"Stored JSON report to compare trend gates against")
	dirCmd.Flags().StringVar(&writeBaseline, "write-baseline", "",
		"Write the JSON report to this path for future trend comparisons")
	analyzeCmd.AddCommand(dirCmd)
}

func runDir(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	u := getUI()
	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	progress.SetStage(ui.StageLoadConfig)
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := &gate.Context{Config: cfg}
	defaults := dirDefaultGates
	if baselinePath != "" {
		baseline, err := gate.LoadBaseline(baselinePath)
		if err != nil {
			return err
		}
		ctx.BaselineAvgGrade = &baseline
		defaults = append(append([]string(nil), defaults...), "grade-trend")
	}

	registry := gate.DefaultRegistry(cfg)
	gates, err := registry.Select(gatesSpec, defaults)
	if err != nil {
		return err
	}
	if err := gate.Validate(gates, ctx); err != nil {
		return err
	}

	a := analyze.New(cfg, newLogger())

	progress.SetStage(ui.StageScanFiles)
	progress.SetDocCount(a.Total(absPath))

	progress.SetStage(ui.StageAnalyze)
	a.OnDocument = progress.DocDone

	docs, summary, err := a.Dir(absPath)
	if err != nil {
		return err
	}
	ctx.Summary = summary

	progress.Done(nil)
	progress = nil

	results, passed := gate.Evaluate(gates, ctx)

	report := &reporter.Report{
		Scope:     path,
		Mode:      "dir",
		Documents: docs,
		Summary:   summary,
		Gates:     results,
		Passed:    passed,
	}

	if writeBaseline != "" {
		if err := saveBaseline(writeBaseline, report); err != nil {
			return err
		}
	}

	if err := render(report); err != nil {
		return err
	}
	if !passed {
		return ErrGateFailed
	}
	return nil
}

// saveBaseline stores the JSON report for future trend-gate comparisons.
func saveBaseline(path string, report *reporter.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write baseline %s: %w", path, err)
	}
	defer f.Close()
	return reporter.NewJSONReporter(f).Report(report)
}
