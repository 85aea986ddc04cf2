package reporter

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/doclens/doclens/internal/aggregate"
	"github.com/doclens/doclens/internal/ui"
)

// TerminalReporter renders the report for humans. Headers and icons go
// through the shared ui.Styles so plain and TTY output degrade in one
// place; severity coloring uses fatih/color.
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTerminalReporter creates a new terminal reporter. A nil styles
// argument renders plain output.
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &TerminalReporter{w: w, styles: styles}
}

// Report renders the report to the terminal.
func (r *TerminalReporter) Report(report *Report) error {
	switch report.Mode {
	case "file":
		for _, doc := range report.Documents {
			r.printDocument(doc)
		}
	default:
		r.printSummary(report)
	}

	r.printGates(report)
	return nil
}

func (r *TerminalReporter) printDocument(doc aggregate.DocResult) {
	fmt.Fprintln(r.w, r.styles.Path.Render(doc.Path))

	if doc.Err != "" {
		color.New(color.FgRed).Fprintf(r.w, "  %s %s\n", r.styles.IconError, doc.Err)
		return
	}

	fmt.Fprintf(r.w, "  Type:              %s\n", doc.Type)
	if doc.Measured() {
		fmt.Fprintf(r.w, "  Tier:              %s\n", doc.Tier)
	}
	fmt.Fprintf(r.w, "  Words:             %d (sentences %d, syllables %d)\n",
		doc.Counts.Words, doc.Counts.Sentences, doc.Counts.Syllables)
	fmt.Fprintf(r.w, "  Grade level:       %.1f\n", displayGrade(doc.Metrics.GradeLevel))
	fmt.Fprintf(r.w, "  Flesch score:      %.1f\n", doc.Metrics.FleschScore)
	fmt.Fprintf(r.w, "  Technical density: %.1f%%\n", doc.Metrics.TechnicalDensity)
	fmt.Fprintf(r.w, "  Reading time:      %d min\n", doc.Metrics.ReadingTimeMinutes)

	for _, v := range doc.Violations {
		color.New(color.FgRed).Fprintf(r.w, "  %s %s %.1f breaches threshold %.1f\n",
			r.styles.IconError, v.Metric, v.Actual, v.Threshold)
	}
	for _, a := range doc.Accepted {
		color.New(color.FgCyan).Fprintf(r.w, "  • %s %.1f accepted (structural, density %.1f%%)\n",
			a.Metric, a.Actual, a.Density)
	}
	for _, w := range doc.Warnings {
		color.New(color.FgYellow).Fprintf(r.w, "  %s %s\n", r.styles.IconWarning, w)
	}
}

func (r *TerminalReporter) printSummary(report *Report) {
	s := report.Summary
	if s == nil {
		return
	}

	fmt.Fprintf(r.w, "%s\n\n", r.styles.Header.Render("Documentation analysis: "+report.Scope))

	fmt.Fprintf(r.w, "  Total documents:           %d\n", s.DocCount)
	fmt.Fprintf(r.w, "  Average reading time:      %.1f min\n", s.AvgReadingTime())
	fmt.Fprintf(r.w, "  Average grade level:       %.1f\n", displayGrade(s.AvgGradeLevel()))
	fmt.Fprintf(r.w, "  Average technical density: %.1f%%\n", s.AvgTechnicalDensity())

	fmt.Fprintln(r.w)
	color.New(color.FgYellow).Fprintln(r.w, "  Tier distribution:")
	for _, share := range s.TierDistribution() {
		fmt.Fprintf(r.w, "    %-12s %3d (%.1f%%)\n", share.Tier, share.Count, share.Percent)
	}

	if len(s.TopLongest) > 0 {
		fmt.Fprintln(r.w)
		color.New(color.FgYellow).Fprintln(r.w, "  Longest reading times:")
		for i, entry := range s.TopLongest {
			fmt.Fprintf(r.w, "    %d. %s (%d min)\n", i+1, entry.Path, int(entry.Value))
		}
	}

	if len(s.TopComplex) > 0 {
		fmt.Fprintln(r.w)
		color.New(color.FgYellow).Fprintln(r.w, "  Most complex documents:")
		for i, entry := range s.TopComplex {
			fmt.Fprintf(r.w, "    %d. %s (grade %.1f)\n", i+1, entry.Path, displayGrade(entry.Value))
		}
	}

	if len(s.Violations) > 0 {
		fmt.Fprintln(r.w)
		color.New(color.FgRed).Fprintln(r.w, "  Violations:")
		for _, v := range s.Violations {
			fmt.Fprintf(r.w, "    %s %s: %s %.1f breaches threshold %.1f\n",
				r.styles.IconError, v.Document, v.Metric, v.Actual, v.Threshold)
		}
	}

	if len(s.Accepted) > 0 {
		fmt.Fprintln(r.w)
		color.New(color.FgCyan).Fprintln(r.w, "  Accepted (structural):")
		for _, a := range s.Accepted {
			fmt.Fprintf(r.w, "    • %s: %s %.1f (density %.1f%%)\n",
				a.Document, a.Metric, a.Actual, a.Density)
		}
	}

	if len(s.Failed) > 0 {
		fmt.Fprintln(r.w)
		color.New(color.FgRed).Fprintln(r.w, "  Failed documents:")
		for _, path := range s.Failed {
			fmt.Fprintf(r.w, "    %s %s\n", r.styles.IconError, path)
		}
	}
}

func (r *TerminalReporter) printGates(report *Report) {
	if len(report.Gates) == 0 {
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "─────────────────────────────────────")

	for _, g := range report.Gates {
		if g.Passed {
			color.New(color.FgGreen).Fprintf(r.w, "  %s %s", r.styles.IconSuccess, g.Gate)
		} else {
			color.New(color.FgRed).Fprintf(r.w, "  %s %s", r.styles.IconError, g.Gate)
		}
		fmt.Fprintf(r.w, ": %s (expected %s)\n", g.Actual, g.Expected)
	}

	fmt.Fprintln(r.w)
	if report.Passed {
		color.New(color.FgGreen).Fprintf(r.w, "%s All gates passed\n", r.styles.IconSuccess)
	} else {
		color.New(color.FgRed).Fprintf(r.w, "%s Gate failure\n", r.styles.IconError)
	}
}
