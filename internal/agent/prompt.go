// Decision prompt construction.
package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

const decisionTemplate = `You are an Autonomous Context Engine. Your goal is to build a perfect context for the user's task.

Task: %q

Available Tools:
%s

Current Context:
%s

History of Actions:
%s

Decide the next step.
- Use "search" to find relevant symbols.
- Use "list_dir" to explore the file structure.
- Use "view_file" to read file contents.
- Use "run_command" only if necessary (e.g. grep).
- Choose "done" when you have gathered sufficient information.

Respond with JSON ONLY:
{
  "action": "use_tool",
  "tool": "tool_name",
  "args": { ... },
  "reason": "why this is needed"
}
OR
{
  "action": "done"
}
`

// buildDecisionPrompt assembles the prompt for one loop iteration.
func (a *Agent) buildDecisionPrompt(actx *AgentContext) (string, error) {
	catalog, err := json.MarshalIndent(a.registry.Definitions(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tool catalog: %w", err)
	}

	return fmt.Sprintf(decisionTemplate,
		actx.Task,
		string(catalog),
		formatGatheredInfo(actx.GatheredInfo),
		strings.Join(actx.History, "\n"),
	), nil
}

// formatGatheredInfo summarizes gathered information one line per item,
// showing only the first line of each item's content.
func formatGatheredInfo(info []VerifiedInfo) string {
	if len(info) == 0 {
		return "No information gathered yet."
	}
	lines := make([]string, 0, len(info))
	for i, item := range info {
		firstLine, _, _ := strings.Cut(item.Content, "\n")
		lines = append(lines, fmt.Sprintf("#%d: %s (Source: %s)", i, firstLine, item.Source))
	}
	return strings.Join(lines, "\n")
}
