// Readiness resolution for plan steps.
package plan

// ReadySteps returns the steps whose dependencies are all satisfied and
// which have not themselves completed, in plan order.
//
// This is a pure function: it is safe to call repeatedly as completed grows,
// and it never mutates the plan. Steps with no dependencies are ready
// immediately.
func ReadySteps(p *Plan, completed map[string]bool) []*Step {
	var ready []*Step
	for i := range p.Steps {
		step := &p.Steps[i]
		if completed[step.ID] {
			continue
		}
		ok := true
		for _, dep := range step.Dependencies {
			if !completed[dep] {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, step)
		}
	}
	return ready
}
