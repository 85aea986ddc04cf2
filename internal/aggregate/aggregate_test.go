package aggregate

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/doclens/doclens/internal/classify"
	"github.com/doclens/doclens/internal/metrics"
	"github.com/doclens/doclens/internal/textstat"
)

func doc(path string, grade float64, readingTime int, tier classify.Tier) DocResult {
	return DocResult{
		Path:   path,
		Counts: textstat.Counts{Words: 100, Sentences: 10, Syllables: 150},
		Metrics: metrics.Metrics{
			GradeLevel:         grade,
			FleschScore:        50,
			TechnicalDensity:   25,
			ReadingTimeMinutes: readingTime,
		},
		Tier: tier,
	}
}

func TestTierDistributionPercentages(t *testing.T) {
	// 50 advanced + 1 intermediate must report exactly 98.0% / 2.0%
	s := New(5)
	for i := 0; i < 50; i++ {
		s.Add(doc(fmt.Sprintf("docs/advanced-%02d.md", i), 20, 3, classify.TierAdvanced))
	}
	s.Add(doc("docs/middle.md", 15, 3, classify.TierIntermediate))

	shares := s.TierDistribution()
	byTier := make(map[classify.Tier]TierShare)
	for _, share := range shares {
		byTier[share.Tier] = share
	}

	if got := byTier[classify.TierAdvanced]; got.Count != 50 || got.Percent != 98.0 {
		t.Errorf("advanced = %+v, want count 50 percent 98.0", got)
	}
	if got := byTier[classify.TierIntermediate]; got.Count != 1 || got.Percent != 2.0 {
		t.Errorf("intermediate = %+v, want count 1 percent 2.0", got)
	}
	if got := byTier[classify.TierBeginner]; got.Count != 0 || got.Percent != 0 {
		t.Errorf("beginner = %+v, want zero", got)
	}
}

func TestAverages(t *testing.T) {
	s := New(5)
	s.Add(doc("a.md", 10, 2, classify.TierBeginner))
	s.Add(doc("b.md", 14, 4, classify.TierIntermediate))

	if got := s.AvgGradeLevel(); got != 12 {
		t.Errorf("AvgGradeLevel = %v, want 12", got)
	}
	if got := s.AvgReadingTime(); got != 3 {
		t.Errorf("AvgReadingTime = %v, want 3", got)
	}
}

func TestZeroWordExcluded(t *testing.T) {
	s := New(5)
	s.Add(doc("real.md", 10, 2, classify.TierBeginner))
	s.Add(DocResult{Path: "empty.md"})

	if s.DocCount != 2 {
		t.Errorf("DocCount = %d, want 2", s.DocCount)
	}
	if s.MeasuredCount != 1 {
		t.Errorf("MeasuredCount = %d, want 1", s.MeasuredCount)
	}
	if got := s.AvgGradeLevel(); got != 10 {
		t.Errorf("AvgGradeLevel = %v, want 10 (empty doc excluded)", got)
	}
}

func TestFailedDocumentExcluded(t *testing.T) {
	s := New(5)
	s.Add(doc("good.md", 10, 2, classify.TierBeginner))
	s.Add(DocResult{Path: "broken.md", Err: "permission denied"})

	if s.MeasuredCount != 1 {
		t.Errorf("MeasuredCount = %d, want 1", s.MeasuredCount)
	}
	if !reflect.DeepEqual(s.Failed, []string{"broken.md"}) {
		t.Errorf("Failed = %v, want [broken.md]", s.Failed)
	}
}

func TestEmptySummaryAverages(t *testing.T) {
	s := New(5)
	if s.AvgGradeLevel() != 0 || s.AvgReadingTime() != 0 || s.AvgTechnicalDensity() != 0 {
		t.Error("empty summary averages must be zero, never NaN")
	}
}

func TestTopNTieBreak(t *testing.T) {
	s := New(2)
	s.Add(doc("c.md", 10, 5, classify.TierBeginner))
	s.Add(doc("a.md", 10, 5, classify.TierBeginner))
	s.Add(doc("b.md", 10, 5, classify.TierBeginner))

	want := []Ranked{{Path: "a.md", Value: 5}, {Path: "b.md", Value: 5}}
	if !reflect.DeepEqual(s.TopLongest, want) {
		t.Errorf("TopLongest = %v, want %v (lexicographic tie-break)", s.TopLongest, want)
	}
}

func TestMergeAssociative(t *testing.T) {
	// Grades are exact binary fractions so float sums are order-independent
	docs := []DocResult{
		doc("a.md", 8.5, 1, classify.TierBeginner),
		doc("b.md", 12.25, 2, classify.TierIntermediate),
		doc("c.md", 18.5, 3, classify.TierAdvanced),
		doc("d.md", 10.75, 4, classify.TierBeginner),
		doc("e.md", 20.0, 5, classify.TierAdvanced),
		doc("f.md", 15.5, 6, classify.TierIntermediate),
	}

	partial := func(results ...DocResult) *Summary {
		s := New(3)
		for _, r := range results {
			s.Add(r)
		}
		return s
	}

	// merge(merge(A,B),C)
	left := partial(docs[0], docs[1])
	left.Merge(partial(docs[2], docs[3]))
	left.Merge(partial(docs[4], docs[5]))

	// merge(A,merge(B,C))
	bc := partial(docs[2], docs[3])
	bc.Merge(partial(docs[4], docs[5]))
	right := partial(docs[0], docs[1])
	right.Merge(bc)

	// flat sequential
	flat := partial(docs...)

	if !reflect.DeepEqual(left, right) {
		t.Errorf("merge not associative:\n left: %+v\nright: %+v", left, right)
	}
	if !reflect.DeepEqual(left, flat) {
		t.Errorf("merged summary differs from sequential:\nmerged: %+v\n  flat: %+v", left, flat)
	}
}

func TestMergeOrderInvariance(t *testing.T) {
	// Two workers finishing in swapped order must merge identically
	a := doc("docs/one.md", 9.5, 2, classify.TierBeginner)
	b := doc("docs/two.md", 19.5, 8, classify.TierAdvanced)

	first := New(5)
	first.Add(a)
	wa := New(5)
	wa.Add(b)
	first.Merge(wa)

	second := New(5)
	second.Add(b)
	wb := New(5)
	wb.Add(a)
	second.Merge(wb)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("merge not commutative:\n%+v\nvs\n%+v", first, second)
	}
}

func TestMergeViolationsSorted(t *testing.T) {
	v1 := classify.Violation{Document: "b.md", Metric: classify.MetricGradeLevel}
	v2 := classify.Violation{Document: "a.md", Metric: classify.MetricFleschScore}

	s1 := New(5)
	r1 := doc("b.md", 20, 3, classify.TierAdvanced)
	r1.Violations = []classify.Violation{v1}
	s1.Add(r1)

	s2 := New(5)
	r2 := doc("a.md", 20, 3, classify.TierAdvanced)
	r2.Violations = []classify.Violation{v2}
	s2.Add(r2)

	s1.Merge(s2)
	if len(s1.Violations) != 2 || s1.Violations[0].Document != "a.md" {
		t.Errorf("violations must be path-sorted after merge, got %+v", s1.Violations)
	}
}
