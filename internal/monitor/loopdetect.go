// Action loop detection over a sliding window of step IDs.
package monitor

import "fmt"

// loopWindowCapacity bounds the sliding window of recent step IDs.
const loopWindowCapacity = 20

type loopDetector struct {
	recent []string
	max    int
}

func newLoopDetector(max int) *loopDetector {
	return &loopDetector{max: max}
}

func (d *loopDetector) add(stepID string) {
	d.recent = append(d.recent, stepID)
	if len(d.recent) > d.max {
		d.recent = d.recent[1:]
	}
}

// detect inspects only the tail of the window: three identical trailing IDs
// flag an immediate repetition, and two back-to-back identical three-ID
// sequences flag a periodic repetition.
func (d *loopDetector) detect() Issue {
	if n := len(d.recent); n >= 3 {
		last := d.recent[n-3:]
		if last[0] == last[1] && last[1] == last[2] {
			return &InfiniteLoop{
				Pattern: fmt.Sprintf("Repeated step: %s", last[0]),
			}
		}
	}

	if n := len(d.recent); n >= 6 {
		first := d.recent[n-6 : n-3]
		second := d.recent[n-3:]
		if first[0] == second[0] && first[1] == second[1] && first[2] == second[2] {
			return &InfiniteLoop{
				Pattern: fmt.Sprintf("Repeated pattern: %v", first),
			}
		}
	}

	return nil
}
