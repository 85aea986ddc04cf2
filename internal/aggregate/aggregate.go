package aggregate

import (
	"math"
	"sort"

	"github.com/doclens/doclens/internal/classify"
	"github.com/doclens/doclens/internal/doctype"
	"github.com/doclens/doclens/internal/metrics"
	"github.com/doclens/doclens/internal/textstat"
)

// DocResult is the per-document tuple flowing out of the analysis pipeline
// and into summaries and reports.
type DocResult struct {
	Path       string
	Type       doctype.DocType
	Counts     textstat.Counts
	Metrics    metrics.Metrics
	Tier       classify.Tier
	Violations []classify.Violation
	Accepted   []classify.Acceptance
	Warnings   []string
	Err        string
}

// Measured reports whether the document contributes to averages and tier
// distribution: it parsed successfully and contains at least one word.
func (r DocResult) Measured() bool {
	return r.Err == "" && r.Counts.Words > 0
}

// Ranked is one entry of a Top-N list.
type Ranked struct {
	Path  string
	Value float64
}

// TierShare is one tier's slice of the distribution.
type TierShare struct {
	Tier    classify.Tier
	Count   int
	Percent float64
}

// Summary is a pure reduction of DocResults for a scope. It stores sums
// rather than means so that two partial summaries merge losslessly; the
// Merge operation is associative and commutative up to the documented
// path tie-break, which is what makes parallel and hierarchical
// aggregation safe.
type Summary struct {
	TopN int

	DocCount      int
	MeasuredCount int

	ReadingTimeTotal int
	GradeTotal       float64
	DensityTotal     float64

	TierCounts map[classify.Tier]int

	TopLongest []Ranked
	TopComplex []Ranked

	Violations []classify.Violation
	Accepted   []classify.Acceptance
	Failed     []string
}

// New creates an empty summary whose ranked lists keep topN entries.
func New(topN int) *Summary {
	return &Summary{
		TopN:       topN,
		TierCounts: make(map[classify.Tier]int),
	}
}

// Add folds one document result into the summary.
func (s *Summary) Add(r DocResult) {
	s.DocCount++

	if r.Err != "" {
		s.Failed = append(s.Failed, r.Path)
		s.normalize()
		return
	}

	s.Violations = append(s.Violations, r.Violations...)
	s.Accepted = append(s.Accepted, r.Accepted...)

	if !r.Measured() {
		s.normalize()
		return
	}

	s.MeasuredCount++
	s.ReadingTimeTotal += r.Metrics.ReadingTimeMinutes
	s.GradeTotal += r.Metrics.GradeLevel
	s.DensityTotal += r.Metrics.TechnicalDensity
	s.TierCounts[r.Tier]++

	s.TopLongest = append(s.TopLongest, Ranked{Path: r.Path, Value: float64(r.Metrics.ReadingTimeMinutes)})
	s.TopComplex = append(s.TopComplex, Ranked{Path: r.Path, Value: r.Metrics.GradeLevel})
	s.normalize()
}

// Merge folds another partial summary into this one. Both summaries must
// use the same TopN for ranked lists to stay correct.
func (s *Summary) Merge(o *Summary) {
	s.DocCount += o.DocCount
	s.MeasuredCount += o.MeasuredCount
	s.ReadingTimeTotal += o.ReadingTimeTotal
	s.GradeTotal += o.GradeTotal
	s.DensityTotal += o.DensityTotal

	for tier, count := range o.TierCounts {
		s.TierCounts[tier] += count
	}

	s.TopLongest = append(s.TopLongest, o.TopLongest...)
	s.TopComplex = append(s.TopComplex, o.TopComplex...)
	s.Violations = append(s.Violations, o.Violations...)
	s.Accepted = append(s.Accepted, o.Accepted...)
	s.Failed = append(s.Failed, o.Failed...)

	s.normalize()
}

// normalize re-ranks the Top-N lists and sorts the record slices so a
// summary's contents are independent of the order results arrived in.
func (s *Summary) normalize() {
	s.TopLongest = rank(s.TopLongest, s.TopN)
	s.TopComplex = rank(s.TopComplex, s.TopN)

	sort.Slice(s.Violations, func(i, j int) bool {
		if s.Violations[i].Document != s.Violations[j].Document {
			return s.Violations[i].Document < s.Violations[j].Document
		}
		return s.Violations[i].Metric < s.Violations[j].Metric
	})
	sort.Slice(s.Accepted, func(i, j int) bool {
		if s.Accepted[i].Document != s.Accepted[j].Document {
			return s.Accepted[i].Document < s.Accepted[j].Document
		}
		return s.Accepted[i].Metric < s.Accepted[j].Metric
	})
	sort.Strings(s.Failed)
}

// rank sorts by descending value with a lexicographic path tie-break and
// keeps the top n entries. The tie-break makes ranking deterministic
// regardless of input ordering.
func rank(list []Ranked, n int) []Ranked {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Value != list[j].Value {
			return list[i].Value > list[j].Value
		}
		return list[i].Path < list[j].Path
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// AvgReadingTime is the mean reading time over measured documents.
func (s *Summary) AvgReadingTime() float64 {
	if s.MeasuredCount == 0 {
		return 0
	}
	return float64(s.ReadingTimeTotal) / float64(s.MeasuredCount)
}

// AvgGradeLevel is the mean grade level over measured documents.
func (s *Summary) AvgGradeLevel() float64 {
	if s.MeasuredCount == 0 {
		return 0
	}
	return s.GradeTotal / float64(s.MeasuredCount)
}

// AvgTechnicalDensity is the mean technical density over measured documents.
func (s *Summary) AvgTechnicalDensity() float64 {
	if s.MeasuredCount == 0 {
		return 0
	}
	return s.DensityTotal / float64(s.MeasuredCount)
}

// TierDistribution returns per-tier counts and percentages (one decimal,
// of measured documents), in ascending complexity order.
func (s *Summary) TierDistribution() []TierShare {
	shares := make([]TierShare, 0, 3)
	for _, tier := range classify.Tiers() {
		count := s.TierCounts[tier]
		share := TierShare{Tier: tier, Count: count}
		if s.MeasuredCount > 0 {
			share.Percent = math.Round(1000*float64(count)/float64(s.MeasuredCount)) / 10
		}
		shares = append(shares, share)
	}
	return shares
}
