package gate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/doclens/doclens/internal/config"
)

// Registry holds the available gates keyed by name.
type Registry struct {
	gates map[string]Gate
	order []string
}

// NewRegistry creates an empty gate registry.
func NewRegistry() *Registry {
	return &Registry{gates: make(map[string]Gate)}
}

// Register adds a gate to the registry.
func (r *Registry) Register(g Gate) {
	if _, ok := r.gates[g.Name()]; !ok {
		r.order = append(r.order, g.Name())
	}
	r.gates[g.Name()] = g
}

// Get returns a gate by name, or nil.
func (r *Registry) Get(name string) Gate {
	return r.gates[name]
}

// Names returns registered gate names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Select resolves a comma-separated gate specification into gates.
// "none" selects no gates (informational run); an empty spec selects the
// defaults for the invocation mode. Unknown names are configuration errors.
func (r *Registry) Select(spec string, defaults []string) ([]Gate, error) {
	names := defaults
	if spec != "" {
		if strings.EqualFold(spec, "none") {
			return nil, nil
		}
		names = strings.Split(spec, ",")
	}

	gates := make([]Gate, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		g := r.Get(name)
		if g == nil {
			return nil, fmt.Errorf("unknown gate %q (available: %s)", name, strings.Join(r.Names(), ", "))
		}
		gates = append(gates, g)
	}
	return gates, nil
}

// DefaultRegistry returns a registry with every built-in gate, with
// numeric limits taken from the run configuration.
func DefaultRegistry(cfg *config.Config) *Registry {
	r := NewRegistry()
	r.Register(&NoViolationsGate{})
	r.Register(&AvgGradeGate{Max: cfg.MaxAvgGrade})
	r.Register(&BeginnerPresentGate{})
	r.Register(&GradeTrendGate{})
	return r
}

// baselineReport decodes just the summary field needed for trend gates
// out of a stored JSON report.
type baselineReport struct {
	Summary *struct {
		AverageGradeLevel float64 `json:"averageGradeLevel"`
	} `json:"summary"`
}

// LoadBaseline reads the average grade level from a stored JSON report.
func LoadBaseline(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read baseline %s: %w", path, err)
	}

	var report baselineReport
	if err := json.Unmarshal(data, &report); err != nil {
		return 0, fmt.Errorf("invalid baseline %s: %w", path, err)
	}
	if report.Summary == nil {
		return 0, fmt.Errorf("invalid baseline %s: missing summary", path)
	}
	return report.Summary.AverageGradeLevel, nil
}
