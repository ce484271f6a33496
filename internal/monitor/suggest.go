// Correction suggestions for detected health issues.
package monitor

import "fmt"

// SuggestCorrections maps each issue to human-readable remediation text.
// It is a pure function over the issue list and never mutates monitor state.
func (m *Monitor) SuggestCorrections(issues []Issue) []string {
	var suggestions []string

	for _, issue := range issues {
		switch v := issue.(type) {
		case *StuckState:
			suggestions = append(suggestions, fmt.Sprintf(
				"Step %q stuck for %ds. Suggestions:\n"+
					"1. Timeout and retry with different approach\n"+
					"2. Skip to fallback step\n"+
					"3. Abort and replan with more context",
				v.StepID, int(v.Duration.Seconds())))

		case *HighFailureRate:
			suggestions = append(suggestions, fmt.Sprintf(
				"High failure rate (%.1f%%). Suggestions:\n"+
					"1. Revise execution plan\n"+
					"2. Gather more context before proceeding\n"+
					"3. Use different tools or approaches\n"+
					"4. Break down complex steps into smaller ones",
				v.Rate*100))

		case *InfiniteLoop:
			suggestions = append(suggestions, fmt.Sprintf(
				"Infinite loop detected: %s. Suggestions:\n"+
					"1. Break loop with new approach\n"+
					"2. Add loop counter and exit condition\n"+
					"3. Abort and replan with different strategy",
				v.Pattern))

		case *Timeout:
			suggestions = append(suggestions, fmt.Sprintf(
				"Step %q timed out (expected: %ds, actual: %ds). Suggestions:\n"+
					"1. Increase timeout for this step\n"+
					"2. Split into smaller, faster steps\n"+
					"3. Use fallback approach\n"+
					"4. Optimize the operation",
				v.StepID, int(v.Expected.Seconds()), int(v.Actual.Seconds())))

		case *ExcessiveRetries:
			suggestions = append(suggestions, fmt.Sprintf(
				"Step %q retried %d times. Suggestions:\n"+
					"1. This approach may not work, try fallback\n"+
					"2. Gather more information before retrying\n"+
					"3. Adjust parameters or approach\n"+
					"4. Skip this step if not critical",
				v.StepID, v.RetryCount))
		}
	}

	return suggestions
}
