// Terminal rendering for events, plans and run summaries.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vinayprograms/taskengine/internal/agent"
	"github.com/vinayprograms/taskengine/internal/monitor"
	"github.com/vinayprograms/taskengine/internal/plan"
)

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - step counters, metadata

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - headers

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")) // Blue - tool calls

	thoughtStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")) // Magenta - reasoning

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // Red

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow
)

// renderEvent formats one agent event as a terminal line.
func renderEvent(ev agent.Event) string {
	switch e := ev.(type) {
	case agent.StepEvent:
		return dimStyle.Render(fmt.Sprintf("[step %d/%d]", e.Step, e.MaxSteps))
	case agent.ThoughtEvent:
		return thoughtStyle.Render(e.Content)
	case agent.ToolCallEvent:
		return toolStyle.Render(fmt.Sprintf("-> %s %v", e.Tool, e.Args))
	case agent.ToolOutputEvent:
		return dimStyle.Render(indent(e.Output, "   "))
	case agent.ErrorEvent:
		return errorStyle.Render("error: " + e.Error)
	case agent.DoneEvent:
		return successStyle.Render("done")
	default:
		return dimStyle.Render(fmt.Sprintf("%v", ev))
	}
}

// renderSummary formats the gathered context and health findings after a
// run finishes.
func renderSummary(actx *agent.AgentContext, mon *monitor.Monitor) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Run summary") + "\n")
	b.WriteString(fmt.Sprintf("  gathered: %d item(s), history: %d line(s)\n",
		len(actx.GatheredInfo), len(actx.History)))

	metrics := mon.Metrics()
	b.WriteString(fmt.Sprintf("  steps: %d total, %d ok, %d failed, avg %s\n",
		metrics.TotalSteps, metrics.SuccessfulSteps, metrics.FailedSteps,
		metrics.AverageStepDuration))

	issues := mon.CheckHealth()
	if len(issues) == 0 {
		b.WriteString(successStyle.Render("  health: ok") + "\n")
		return b.String()
	}

	b.WriteString(warnStyle.Render(fmt.Sprintf("  health: %d issue(s)", len(issues))) + "\n")
	for _, suggestion := range mon.SuggestCorrections(issues) {
		b.WriteString("  " + warnStyle.Render(suggestion) + "\n")
	}
	return b.String()
}

// renderValidationOK reports a successfully validated plan.
func renderValidationOK(p *plan.Plan) string {
	return successStyle.Render(fmt.Sprintf("plan ok: %q, %d step(s)", p.Goal, len(p.Steps)))
}

// renderPlan formats a plan's steps, dependencies and initial frontier.
func renderPlan(p *plan.Plan) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Goal) + "\n")

	for i := range p.Steps {
		s := &p.Steps[i]
		b.WriteString(fmt.Sprintf("  %s %s\n",
			toolStyle.Render(s.ID), dimStyle.Render("("+s.Tool+")")))
		if len(s.Dependencies) > 0 {
			b.WriteString(dimStyle.Render("    after: "+strings.Join(s.Dependencies, ", ")) + "\n")
		}
		if len(s.FallbackSteps) > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    fallbacks: %d", len(s.FallbackSteps))) + "\n")
		}
	}

	ready := plan.ReadySteps(p, nil)
	ids := make([]string, 0, len(ready))
	for _, s := range ready {
		ids = append(ids, s.ID)
	}
	b.WriteString(successStyle.Render("ready now: "+strings.Join(ids, ", ")) + "\n")
	return b.String()
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
