package reporter

import (
	"github.com/doclens/doclens/internal/aggregate"
	"github.com/doclens/doclens/internal/gate"
)

// Report is the single source of truth for run output. Both renderers
// read from the same instance, so the human table and the JSON document
// can never diverge in underlying values.
type Report struct {
	Scope     string
	Mode      string // "file" or "dir"
	Documents []aggregate.DocResult
	Summary   *aggregate.Summary // nil in file mode
	Gates     []gate.Result
	Passed    bool
}

// Reporter renders a report to an output stream.
type Reporter interface {
	Report(r *Report) error
}

// displayGrade clips a grade level for display. Trivially short text can
// produce negative formula output; the stored value keeps the raw number.
func displayGrade(g float64) float64 {
	if g < 0 {
		return 0
	}
	return g
}
