// Decision decoding for the autonomous loop.
package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is the agent's decision for one iteration: invoke a tool or stop.
type Action struct {
	Kind   ActionKind
	Tool   string
	Args   map[string]interface{}
	Reason string
}

// ActionKind discriminates the decision variants.
type ActionKind string

const (
	ActionUseTool ActionKind = "use_tool"
	ActionDone    ActionKind = "done"
)

// decodeAction parses a decision response. The response must be a JSON
// object with an "action" discriminator; anything else is a decode error
// and fatal to the run.
func decodeAction(content string) (*Action, error) {
	clean := cleanDecision(content)

	var raw struct {
		Action string                 `json:"action"`
		Tool   string                 `json:"tool"`
		Args   map[string]interface{} `json:"args"`
		Reason string                 `json:"reason"`
	}
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse agent decision: %w", err)
	}

	switch raw.Action {
	case string(ActionUseTool):
		if raw.Tool == "" {
			return nil, fmt.Errorf("failed to parse agent decision: use_tool without a tool name")
		}
		args := raw.Args
		if args == nil {
			args = map[string]interface{}{}
		}
		return &Action{Kind: ActionUseTool, Tool: raw.Tool, Args: args, Reason: raw.Reason}, nil
	case string(ActionDone):
		return &Action{Kind: ActionDone}, nil
	default:
		return nil, fmt.Errorf("failed to parse agent decision: unknown action %q", raw.Action)
	}
}

// cleanDecision strips markdown code fences around a JSON decision.
func cleanDecision(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
