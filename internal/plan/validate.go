// Dependency cycle validation.
package plan

import "fmt"

// CircularDependencyError reports a dependency cycle in a plan.
type CircularDependencyError struct {
	StepID string // a step on the cycle
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected in plan at step %q", e.StepID)
}

// visitation colors for cycle detection.
const (
	colorUnvisited = iota
	colorInProgress
	colorResolved
)

// Validate checks a plan for dependency cycles and returns a
// *CircularDependencyError on the first cycle found. Only the dependency
// edges are traversed; fallback steps are not part of the ordering graph.
//
// The traversal is an iterative depth-first search with an explicit stack,
// so arbitrarily deep dependency chains cannot exhaust the call stack.
func Validate(p *Plan) error {
	steps := make(map[string]*Step, len(p.Steps))
	for i := range p.Steps {
		steps[p.Steps[i].ID] = &p.Steps[i]
	}

	colors := make(map[string]int, len(p.Steps))

	type frame struct {
		id   string
		next int // index of the next dependency to descend into
	}

	for i := range p.Steps {
		root := p.Steps[i].ID
		if colors[root] != colorUnvisited {
			continue
		}

		stack := []frame{{id: root}}
		colors[root] = colorInProgress

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			step := steps[top.id]

			if step == nil || top.next >= len(step.Dependencies) {
				colors[top.id] = colorResolved
				stack = stack[:len(stack)-1]
				continue
			}

			dep := step.Dependencies[top.next]
			top.next++

			switch colors[dep] {
			case colorInProgress:
				return &CircularDependencyError{StepID: dep}
			case colorUnvisited:
				// Unknown IDs get a frame too; they resolve immediately.
				colors[dep] = colorInProgress
				stack = append(stack, frame{id: dep})
			}
		}
	}

	return nil
}
