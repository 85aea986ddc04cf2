package metrics

import (
	"math"

	"github.com/doclens/doclens/internal/config"
	"github.com/doclens/doclens/internal/extract"
	"github.com/doclens/doclens/internal/textstat"
)

// Metrics holds the per-document readability measurements.
//
// GradeLevel may be negative for trivially short text and FleschScore is
// the raw formula output, not clamped to [0,100]; display code clips them.
type Metrics struct {
	GradeLevel         float64
	FleschScore        float64
	TechnicalDensity   float64
	ReadingTimeMinutes int
}

// Compute derives Metrics from token counts and extraction stats. Pure and
// deterministic: identical inputs always produce identical outputs.
//
// A document with zero words short-circuits to all-zero metrics so that no
// NaN or Inf ever leaves this package.
func Compute(counts textstat.Counts, ext *extract.Extraction, cfg *config.Config) Metrics {
	if counts.Words == 0 {
		return Metrics{}
	}

	words := float64(counts.Words)
	sentences := float64(counts.Sentences)
	syllables := float64(counts.Syllables)

	m := Metrics{
		GradeLevel:  0.39*(words/sentences) + 11.8*(syllables/words) - 15.59,
		FleschScore: 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words),
	}

	m.TechnicalDensity = technicalDensity(ext, technicalTokenChars(ext.Prose, cfg))

	m.ReadingTimeMinutes = int(math.Ceil(words / float64(cfg.WordsPerMinute)))
	if m.ReadingTimeMinutes < 1 {
		m.ReadingTimeMinutes = 1
	}

	return m
}

// technicalDensity is the percentage of document content classified as
// code, table, or technical-token rather than plain prose.
func technicalDensity(ext *extract.Extraction, tokenChars int) float64 {
	if ext.TotalChars == 0 {
		return 0
	}
	d := 100 * float64(ext.CodeBlockChars+ext.TableChars+tokenChars) / float64(ext.TotalChars)
	if d > 100 {
		d = 100
	}
	return d
}

// technicalTokenChars measures the character span of prose matching the
// configured technical patterns. Spans are unioned so overlapping patterns
// never double-count a character.
func technicalTokenChars(prose string, cfg *config.Config) int {
	if prose == "" {
		return 0
	}

	covered := make([]bool, len(prose))
	for _, re := range cfg.TechnicalRegexps() {
		for _, span := range re.FindAllStringIndex(prose, -1) {
			for i := span[0]; i < span[1]; i++ {
				covered[i] = true
			}
		}
	}

	total := 0
	for _, c := range covered {
		if c {
			total++
		}
	}
	return total
}
