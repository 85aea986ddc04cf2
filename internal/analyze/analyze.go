package analyze

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/doclens/doclens/internal/aggregate"
	"github.com/doclens/doclens/internal/classify"
	"github.com/doclens/doclens/internal/config"
	"github.com/doclens/doclens/internal/doctype"
	"github.com/doclens/doclens/internal/extract"
	"github.com/doclens/doclens/internal/metrics"
	"github.com/doclens/doclens/internal/textstat"
)

// skipDirs are directory names never descended into during corpus walks.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// Analyzer runs the per-document pipeline and the directory walk. The
// configuration is immutable for the run, so any number of documents can
// be processed concurrently without coordination.
type Analyzer struct {
	cfg *config.Config
	log *log.Logger

	// OnDocument, when set, is called after each document completes.
	// Used by the progress display; must be safe for concurrent calls.
	OnDocument func(path string)
}

// New creates an Analyzer for one run.
func New(cfg *config.Config, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Analyzer{cfg: cfg, log: logger}
}

// File analyzes a single document. An unreadable file is an I/O error and
// aborts the invocation; parse problems inside the document fail open.
func (a *Analyzer) File(path string) (aggregate.DocResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return aggregate.DocResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return a.Document(filepath.ToSlash(path), content), nil
}

// Dir walks root, analyzes every markdown document concurrently, and
// reduces the results into a summary. Individual unreadable documents are
// recorded with an error marker and excluded from averages; only a failed
// walk aborts the run.
func (a *Analyzer) Dir(root string) ([]aggregate.DocResult, *aggregate.Summary, error) {
	paths, err := a.collect(root)
	if err != nil {
		return nil, nil, err
	}

	results := make([]aggregate.DocResult, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			rel := relPath(root, path)
			content, err := os.ReadFile(path)
			if err != nil {
				results[i] = aggregate.DocResult{Path: rel, Err: err.Error()}
			} else {
				results[i] = a.Document(rel, content)
			}
			if a.OnDocument != nil {
				a.OnDocument(rel)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := aggregate.New(a.cfg.TopN)
	for _, r := range results {
		summary.Add(r)
	}
	return results, summary, nil
}

// Total returns how many documents Dir would analyze under root.
func (a *Analyzer) Total(root string) int {
	paths, err := a.collect(root)
	if err != nil {
		return 0
	}
	return len(paths)
}

func (a *Analyzer) collect(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".md" || ext == ".markdown" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Document runs the full per-document pipeline on raw markdown content.
// Pure apart from logging: identical content always yields an identical
// result.
func (a *Analyzer) Document(path string, content []byte) aggregate.DocResult {
	ext := extract.Extract(content)
	counts := textstat.Analyze(ext.Prose)
	m := metrics.Compute(counts, ext, a.cfg)
	dt := doctype.Infer(path, ext.Frontmatter)

	r := aggregate.DocResult{
		Path:     path,
		Type:     dt,
		Counts:   counts,
		Metrics:  m,
		Warnings: append([]string(nil), ext.Warnings...),
	}

	if counts.Words > 0 {
		cls := classify.Classify(path, dt, m, a.cfg)
		r.Tier = cls.Tier
		r.Violations = cls.Violations
		r.Accepted = cls.Accepted
	}

	r.Warnings = append(r.Warnings, claimMismatches(ext.Frontmatter, r)...)

	for _, w := range r.Warnings {
		a.log.Warn(w, "path", path)
	}

	return r
}

// claimMismatches compares frontmatter-declared metrics against computed
// ones. Claims are never trusted for gate evaluation; a drift is reported
// as a non-fatal warning.
func claimMismatches(frontmatter map[string]interface{}, r aggregate.DocResult) []string {
	if frontmatter == nil {
		return nil
	}

	var warnings []string

	if v, ok := asFloat(frontmatter["reading_time"]); ok {
		if int(v) != r.Metrics.ReadingTimeMinutes {
			warnings = append(warnings, fmt.Sprintf(
				"frontmatter claims reading time %d min, computed %d min",
				int(v), r.Metrics.ReadingTimeMinutes))
		}
	}

	if v, ok := asFloat(frontmatter["grade_level"]); ok {
		if math.Abs(v-r.Metrics.GradeLevel) > 0.5 {
			warnings = append(warnings, fmt.Sprintf(
				"frontmatter claims grade level %.1f, computed %.1f",
				v, r.Metrics.GradeLevel))
		}
	}

	if v, ok := frontmatter["tier"].(string); ok {
		if claimed, valid := classify.ParseTier(v); valid && claimed != r.Tier {
			warnings = append(warnings, fmt.Sprintf(
				"frontmatter claims tier %s, computed %s", claimed, r.Tier))
		}
	}

	return warnings
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
