// Package plan provides the execution plan model, validation, and readiness
// resolution for dependency-ordered step graphs.
package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Plan is a dependency-ordered execution plan for a single goal.
// The plan is immutable once validated; completion bookkeeping is held by
// the caller as a set of completed step IDs.
type Plan struct {
	Goal              string `json:"goal" yaml:"goal"`
	Steps             []Step `json:"steps" yaml:"steps"`
	EstimatedDuration uint64 `json:"estimated_duration" yaml:"estimated_duration"` // seconds
	CreatedAt         int64  `json:"created_at" yaml:"created_at"`                 // unix seconds
}

// Step is a single unit of work within a plan.
//
// Dependencies name step IDs in the same plan that must complete first.
// Dependency IDs are assumed to reference existing steps; unknown IDs are
// not rejected here and simply never become ready. Fallback steps are
// alternatives tried by the caller when the primary step fails; they are
// not part of the ordering graph.
type Step struct {
	ID             string            `json:"id" yaml:"id"`
	Description    string            `json:"description" yaml:"description"`
	Tool           string            `json:"tool" yaml:"tool"`
	Arguments      map[string]string `json:"arguments" yaml:"arguments"`
	ExpectedOutput string            `json:"expected_output" yaml:"expected_output"`
	Dependencies   []string          `json:"dependencies" yaml:"dependencies"`
	FallbackSteps  []Step            `json:"fallback_steps" yaml:"fallback_steps"`
	Timeout        uint64            `json:"timeout" yaml:"timeout"` // seconds
	Retries        uint32            `json:"retries" yaml:"retries"`
}

// StepTimeout returns the step's declared timeout as a duration.
func (s *Step) StepTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// Find returns the step with the given ID, or nil.
func (p *Plan) Find(id string) *Step {
	for i := range p.Steps {
		if p.Steps[i].ID == id {
			return &p.Steps[i]
		}
	}
	return nil
}

// LoadFile loads a plan from a JSON or YAML file, keyed on extension.
// The loaded plan is validated for dependency cycles before being returned.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var p *Plan
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		p = &Plan{}
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing plan YAML: %w", err)
		}
		if p.CreatedAt == 0 {
			p.CreatedAt = time.Now().Unix()
		}
	default:
		p, err = Decode(string(data))
		if err != nil {
			return nil, err
		}
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}
