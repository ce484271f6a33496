// Shell command tool.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// commandTimeout bounds a single run_command execution.
const commandTimeout = 60 * time.Second

// runCommandTool executes a shell command in the workspace.
type runCommandTool struct {
	workspace string
}

func (t *runCommandTool) Name() string { return "run_command" }

func (t *runCommandTool) Description() string {
	return "Run a shell command in the workspace and return its combined output."
}

func (t *runCommandTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"command": map[string]interface{}{
				"type":        "string",
				"description": "Shell command to execute",
			},
		},
		"required": []string{"command"},
	}
}

func (t *runCommandTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	command, ok := stringArg(args, "command")
	if !ok {
		return "", fmt.Errorf("command is required")
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	if t.workspace != "" {
		cmd.Dir = t.workspace
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command failed: %w\n%s", err, out.String())
	}
	return out.String(), nil
}
