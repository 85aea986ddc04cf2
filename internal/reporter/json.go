package reporter

import (
	"encoding/json"
	"io"

	"github.com/doclens/doclens/internal/aggregate"
	"github.com/doclens/doclens/internal/classify"
)

// JSONReporter outputs the report as indented JSON for machine and CI
// consumption. Output carries no timestamps, so re-running on unchanged
// input produces byte-identical documents.
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Scope     string         `json:"scope"`
	Mode      string         `json:"mode"`
	Documents []JSONDocument `json:"documents"`
	Summary   *JSONSummary   `json:"summary,omitempty"`
	Gates     []JSONGate     `json:"gates"`
	Passed    bool           `json:"passed"`
}

// JSONDocument mirrors a per-document result.
type JSONDocument struct {
	Path               string           `json:"path"`
	Type               string           `json:"type,omitempty"`
	Tier               string           `json:"tier,omitempty"`
	WordCount          int              `json:"wordCount"`
	SentenceCount      int              `json:"sentenceCount"`
	SyllableCount      int              `json:"syllableCount"`
	GradeLevel         float64          `json:"gradeLevel"`
	FleschScore        float64          `json:"fleschScore"`
	TechnicalDensity   float64          `json:"technicalDensity"`
	ReadingTimeMinutes int              `json:"readingTimeMinutes"`
	Violations         []JSONViolation  `json:"violations,omitempty"`
	Accepted           []JSONAcceptance `json:"accepted,omitempty"`
	Warnings           []string         `json:"warnings,omitempty"`
	Error              string           `json:"error,omitempty"`
}

// JSONViolation mirrors an unexempted threshold breach.
type JSONViolation struct {
	Document  string  `json:"document"`
	Metric    string  `json:"metric"`
	Actual    float64 `json:"actual"`
	Threshold float64 `json:"threshold"`
	Severity  string  `json:"severity"`
}

// JSONAcceptance mirrors a structurally exempted breach.
type JSONAcceptance struct {
	Document  string  `json:"document"`
	Metric    string  `json:"metric"`
	Actual    float64 `json:"actual"`
	Threshold float64 `json:"threshold"`
	Density   float64 `json:"density"`
}

// JSONSummary mirrors a directory summary.
type JSONSummary struct {
	DocCount                int              `json:"docCount"`
	MeasuredCount           int              `json:"measuredCount"`
	AverageReadingTime      float64          `json:"averageReadingTime"`
	AverageGradeLevel       float64          `json:"averageGradeLevel"`
	AverageTechnicalDensity float64          `json:"averageTechnicalDensity"`
	Tiers                   []JSONTierShare  `json:"tiers"`
	LongestReadingTimes     []JSONRanked     `json:"longestReadingTimes"`
	MostComplex             []JSONRanked     `json:"mostComplex"`
	Violations              []JSONViolation  `json:"violations"`
	Accepted                []JSONAcceptance `json:"accepted"`
	Failed                  []string         `json:"failed,omitempty"`
}

// JSONTierShare mirrors one tier's slice of the distribution.
type JSONTierShare struct {
	Tier    string  `json:"tier"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// JSONRanked mirrors one Top-N entry.
type JSONRanked struct {
	Path  string  `json:"path"`
	Value float64 `json:"value"`
}

// JSONGate mirrors a gate result.
type JSONGate struct {
	Gate     string `json:"gate"`
	Passed   bool   `json:"passed"`
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
}

// Report encodes the report as JSON.
func (r *JSONReporter) Report(report *Report) error {
	out := JSONOutput{
		Scope:     report.Scope,
		Mode:      report.Mode,
		Documents: make([]JSONDocument, 0, len(report.Documents)),
		Gates:     make([]JSONGate, 0, len(report.Gates)),
		Passed:    report.Passed,
	}

	for _, doc := range report.Documents {
		out.Documents = append(out.Documents, jsonDocument(doc))
	}
	if report.Summary != nil {
		out.Summary = jsonSummary(report.Summary)
	}
	for _, g := range report.Gates {
		out.Gates = append(out.Gates, JSONGate{
			Gate:     g.Gate,
			Passed:   g.Passed,
			Actual:   g.Actual,
			Expected: g.Expected,
		})
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func jsonDocument(doc aggregate.DocResult) JSONDocument {
	d := JSONDocument{
		Path:               doc.Path,
		WordCount:          doc.Counts.Words,
		SentenceCount:      doc.Counts.Sentences,
		SyllableCount:      doc.Counts.Syllables,
		GradeLevel:         doc.Metrics.GradeLevel,
		FleschScore:        doc.Metrics.FleschScore,
		TechnicalDensity:   doc.Metrics.TechnicalDensity,
		ReadingTimeMinutes: doc.Metrics.ReadingTimeMinutes,
		Warnings:           doc.Warnings,
		Error:              doc.Err,
	}
	if doc.Err == "" {
		d.Type = doc.Type.String()
	}
	if doc.Measured() {
		d.Tier = doc.Tier.String()
	}
	d.Violations = jsonViolations(doc.Violations)
	d.Accepted = jsonAcceptances(doc.Accepted)
	return d
}

func jsonSummary(s *aggregate.Summary) *JSONSummary {
	out := &JSONSummary{
		DocCount:                s.DocCount,
		MeasuredCount:           s.MeasuredCount,
		AverageReadingTime:      s.AvgReadingTime(),
		AverageGradeLevel:       s.AvgGradeLevel(),
		AverageTechnicalDensity: s.AvgTechnicalDensity(),
		Violations:              jsonViolations(s.Violations),
		Accepted:                jsonAcceptances(s.Accepted),
		Failed:                  s.Failed,
	}
	if out.Violations == nil {
		out.Violations = []JSONViolation{}
	}
	if out.Accepted == nil {
		out.Accepted = []JSONAcceptance{}
	}
	for _, share := range s.TierDistribution() {
		out.Tiers = append(out.Tiers, JSONTierShare{
			Tier:    share.Tier.String(),
			Count:   share.Count,
			Percent: share.Percent,
		})
	}
	out.LongestReadingTimes = jsonRanked(s.TopLongest)
	out.MostComplex = jsonRanked(s.TopComplex)
	return out
}

func jsonViolations(violations []classify.Violation) []JSONViolation {
	if len(violations) == 0 {
		return nil
	}
	out := make([]JSONViolation, 0, len(violations))
	for _, v := range violations {
		out = append(out, JSONViolation{
			Document:  v.Document,
			Metric:    v.Metric,
			Actual:    v.Actual,
			Threshold: v.Threshold,
			Severity:  v.Severity.String(),
		})
	}
	return out
}

func jsonAcceptances(accepted []classify.Acceptance) []JSONAcceptance {
	if len(accepted) == 0 {
		return nil
	}
	out := make([]JSONAcceptance, 0, len(accepted))
	for _, a := range accepted {
		out = append(out, JSONAcceptance{
			Document:  a.Document,
			Metric:    a.Metric,
			Actual:    a.Actual,
			Threshold: a.Threshold,
			Density:   a.Density,
		})
	}
	return out
}

func jsonRanked(list []aggregate.Ranked) []JSONRanked {
	out := make([]JSONRanked, 0, len(list))
	for _, r := range list {
		out = append(out, JSONRanked{Path: r.Path, Value: r.Value})
	}
	return out
}
