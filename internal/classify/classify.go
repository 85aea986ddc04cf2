package classify

import (
	"strings"

	"github.com/doclens/doclens/internal/config"
	"github.com/doclens/doclens/internal/doctype"
	"github.com/doclens/doclens/internal/metrics"
)

// Tier is the complexity label derived from grade level.
type Tier int

const (
	TierBeginner Tier = iota
	TierIntermediate
	TierAdvanced
)

func (t Tier) String() string {
	switch t {
	case TierBeginner:
		return "beginner"
	case TierIntermediate:
		return "intermediate"
	case TierAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// ParseTier converts a tier name to a Tier; false for unknown names.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return TierBeginner, true
	case "intermediate":
		return TierIntermediate, true
	case "advanced":
		return TierAdvanced, true
	default:
		return TierBeginner, false
	}
}

// Tiers returns all tiers in ascending complexity order.
func Tiers() []Tier {
	return []Tier{TierBeginner, TierIntermediate, TierAdvanced}
}

// Metric names used in violations and acceptances.
const (
	MetricGradeLevel  = "grade-level"
	MetricFleschScore = "flesch-score"
)

// Severity is the level attached to a violation in reports.
type Severity int

const (
	SeverityError Severity = iota
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Violation records a threshold breach that was not structurally exempt.
type Violation struct {
	Document  string
	Metric    string
	Actual    float64
	Threshold float64
	Severity  Severity
}

// Acceptance records a threshold breach that the structural exemption
// absorbed. Acceptances are surfaced in reports, never silently dropped.
type Acceptance struct {
	Document  string
	Metric    string
	Actual    float64
	Threshold float64
	Density   float64
}

// Result is the classification outcome for one document.
type Result struct {
	Tier       Tier
	Violations []Violation
	Accepted   []Acceptance
}

// TierFor maps a grade level to a complexity tier using the configured
// grade-level bands.
func TierFor(gradeLevel float64, cfg *config.Config) Tier {
	switch {
	case gradeLevel <= cfg.Tiers.BeginnerMax:
		return TierBeginner
	case gradeLevel <= cfg.Tiers.IntermediateMax:
		return TierIntermediate
	default:
		return TierAdvanced
	}
}

// StructurallyExempt is the structural-exemption predicate: documents whose
// technical density exceeds the configured cutoff are dominated by code and
// tables, so readability ceilings do not apply to them. This single
// predicate decides whether a breach becomes a Violation or an Acceptance.
func StructurallyExempt(m metrics.Metrics, cfg *config.Config) bool {
	return m.TechnicalDensity > cfg.ExemptionPercent
}

// Classify maps a document's type and metrics to a complexity tier and any
// threshold violations. Callers must not classify zero-word documents;
// those are excluded from compliance checking entirely.
func Classify(path string, t doctype.DocType, m metrics.Metrics, cfg *config.Config) Result {
	r := Result{Tier: TierFor(m.GradeLevel, cfg)}

	threshold := cfg.ThresholdFor(t)
	exempt := StructurallyExempt(m, cfg)

	if m.GradeLevel > threshold.GradeCeiling {
		if exempt {
			r.Accepted = append(r.Accepted, Acceptance{
				Document:  path,
				Metric:    MetricGradeLevel,
				Actual:    m.GradeLevel,
				Threshold: threshold.GradeCeiling,
				Density:   m.TechnicalDensity,
			})
		} else {
			r.Violations = append(r.Violations, Violation{
				Document:  path,
				Metric:    MetricGradeLevel,
				Actual:    m.GradeLevel,
				Threshold: threshold.GradeCeiling,
				Severity:  SeverityError,
			})
		}
	}

	if m.FleschScore < threshold.FleschMinimum {
		if exempt {
			r.Accepted = append(r.Accepted, Acceptance{
				Document:  path,
				Metric:    MetricFleschScore,
				Actual:    m.FleschScore,
				Threshold: threshold.FleschMinimum,
				Density:   m.TechnicalDensity,
			})
		} else {
			r.Violations = append(r.Violations, Violation{
				Document:  path,
				Metric:    MetricFleschScore,
				Actual:    m.FleschScore,
				Threshold: threshold.FleschMinimum,
				Severity:  SeverityError,
			})
		}
	}

	return r
}
