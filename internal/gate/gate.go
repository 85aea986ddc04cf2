package gate

import (
	"fmt"

	"github.com/doclens/doclens/internal/aggregate"
	"github.com/doclens/doclens/internal/classify"
	"github.com/doclens/doclens/internal/config"
)

// Context carries everything a gate may evaluate against. The baseline
// average is nil unless a stored baseline report was loaded for the run.
type Context struct {
	Summary          *aggregate.Summary
	Config           *config.Config
	BaselineAvgGrade *float64
}

// Result is the outcome of evaluating one gate.
type Result struct {
	Gate     string
	Passed   bool
	Actual   string
	Expected string
}

// Gate is a named pass/fail rule over a scope's summary. The same gates
// run in single-file and full-corpus mode; only the input scope differs.
type Gate interface {
	Name() string
	Description() string
	Evaluate(ctx *Context) Result
}

// NoViolationsGate fails when the scope contains any unexempted violation.
type NoViolationsGate struct{}

func (g *NoViolationsGate) Name() string { return "no-violations" }

func (g *NoViolationsGate) Description() string {
	return "No document may breach its thresholds without a structural exemption"
}

func (g *NoViolationsGate) Evaluate(ctx *Context) Result {
	n := len(ctx.Summary.Violations)
	return Result{
		Gate:     g.Name(),
		Passed:   n == 0,
		Actual:   fmt.Sprintf("%d violations", n),
		Expected: "0 violations",
	}
}

// AvgGradeGate fails when the scope's average grade level exceeds Max.
type AvgGradeGate struct {
	Max float64
}

func (g *AvgGradeGate) Name() string { return "avg-grade" }

func (g *AvgGradeGate) Description() string {
	return "Average grade level must not exceed the configured maximum"
}

func (g *AvgGradeGate) Evaluate(ctx *Context) Result {
	avg := ctx.Summary.AvgGradeLevel()
	return Result{
		Gate:     g.Name(),
		Passed:   avg <= g.Max,
		Actual:   fmt.Sprintf("average grade %.2f", avg),
		Expected: fmt.Sprintf("at most %.2f", g.Max),
	}
}

// BeginnerPresentGate fails when the scope has no Beginner-tier document.
type BeginnerPresentGate struct{}

func (g *BeginnerPresentGate) Name() string { return "beginner-present" }

func (g *BeginnerPresentGate) Description() string {
	return "Every scope must contain at least one beginner-tier document"
}

func (g *BeginnerPresentGate) Evaluate(ctx *Context) Result {
	n := ctx.Summary.TierCounts[classify.TierBeginner]
	return Result{
		Gate:     g.Name(),
		Passed:   n >= 1,
		Actual:   fmt.Sprintf("%d beginner documents", n),
		Expected: "at least 1",
	}
}

// GradeTrendGate fails when the average grade level rose versus a stored
// baseline. Selecting the gate without providing a baseline is rejected by
// Validate before any document is analyzed; the Evaluate fallback still
// passes with a note rather than panicking.
type GradeTrendGate struct{}

func (g *GradeTrendGate) Name() string { return "grade-trend" }

func (g *GradeTrendGate) Description() string {
	return "Average grade level must not increase versus the stored baseline"
}

func (g *GradeTrendGate) Evaluate(ctx *Context) Result {
	if ctx.BaselineAvgGrade == nil {
		return Result{
			Gate:     g.Name(),
			Passed:   true,
			Actual:   "no baseline available",
			Expected: "average grade at or below baseline",
		}
	}
	avg := ctx.Summary.AvgGradeLevel()
	return Result{
		Gate:     g.Name(),
		Passed:   avg <= *ctx.BaselineAvgGrade,
		Actual:   fmt.Sprintf("average grade %.2f", avg),
		Expected: fmt.Sprintf("at most %.2f (baseline)", *ctx.BaselineAvgGrade),
	}
}

// Validate checks that the selected gates can run with the inputs the
// invocation provides. A trend gate without a baseline is a configuration
// error, not a silent pass.
func Validate(gates []Gate, ctx *Context) error {
	for _, g := range gates {
		if _, ok := g.(*GradeTrendGate); ok && ctx.BaselineAvgGrade == nil {
			return fmt.Errorf("gate %q requires a baseline report (--baseline)", g.Name())
		}
	}
	return nil
}

// Evaluate runs the gates in order and returns their results plus the
// overall verdict. An empty gate list always passes: a purely
// informational run never fails.
func Evaluate(gates []Gate, ctx *Context) ([]Result, bool) {
	results := make([]Result, 0, len(gates))
	passed := true
	for _, g := range gates {
		r := g.Evaluate(ctx)
		if !r.Passed {
			passed = false
		}
		results = append(results, r)
	}
	return results, passed
}
