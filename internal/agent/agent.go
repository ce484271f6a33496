// Package agent implements the bounded autonomous loop that gathers
// context for a task by deciding on and executing tools.
package agent

import (
	"context"
	"fmt"

	"github.com/vinayprograms/agentkit/llm"
	"github.com/vinayprograms/agentkit/logging"

	"github.com/vinayprograms/taskengine/internal/monitor"
	"github.com/vinayprograms/taskengine/internal/tools"
)

// maxSteps bounds the autonomous loop. The agent stops after this many
// iterations even if it never decides it is done.
const maxSteps = 15

const (
	// eventOutputLimit bounds the tool output preview in ToolOutput events.
	eventOutputLimit = 1000
	// historyOutputLimit bounds the tool output recorded in history lines.
	historyOutputLimit = 500
)

// AgentContext accumulates everything the agent learned during a run.
type AgentContext struct {
	Task         string         `json:"task"`
	GatheredInfo []VerifiedInfo `json:"gathered_info"`
	History      []string       `json:"history"`
}

// VerifiedInfo is one piece of information gathered from a search or
// file read, attributed to the tool invocation that produced it.
type VerifiedInfo struct {
	Content   string `json:"content"`
	Source    string `json:"source"`
	Relevance string `json:"relevance"`
}

// Agent runs the autonomous loop against a decision provider and a tool
// registry.
type Agent struct {
	provider llm.Provider
	registry *tools.Registry
	monitor  *monitor.Monitor
	logger   *logging.Logger
}

// New creates an agent. The registry decides which tools the loop may
// invoke; the provider makes the per-iteration decisions.
func New(provider llm.Provider, registry *tools.Registry) *Agent {
	return &Agent{
		provider: provider,
		registry: registry,
		logger:   logging.New().WithComponent("agent"),
	}
}

// SetMonitor attaches a health monitor. Tool invocations are recorded as
// execution steps so the monitor can detect stalls and loops.
func (a *Agent) SetMonitor(m *monitor.Monitor) {
	a.monitor = m
}

// Run executes the autonomous loop for a task. Events are sent
// best-effort on the provided channel; a nil channel disables them.
//
// Tool failures and unknown tools are recorded in history and survived;
// only a decision that cannot be obtained or decoded aborts the run. The
// accumulated context is returned even when the step cap is exhausted.
func (a *Agent) Run(ctx context.Context, task string, events chan<- Event) (*AgentContext, error) {
	actx := &AgentContext{Task: task}

	rctx, span := a.startRunSpan(ctx, task)
	defer span.End()

	a.logger.Info("starting autonomous loop", map[string]interface{}{
		"task": truncateForLog(task, 200),
	})

	for step := 1; step <= maxSteps; step++ {
		a.logger.Debug("loop step", map[string]interface{}{
			"step":      step,
			"max_steps": maxSteps,
		})
		emit(events, StepEvent{Step: step, MaxSteps: maxSteps})

		action, err := a.decideNextStep(rctx, actx)
		if err != nil {
			a.endRunSpan(span, len(actx.History), err)
			return nil, err
		}

		if action.Kind == ActionDone {
			a.logger.Info("agent decided it is done", map[string]interface{}{
				"steps": step,
			})
			emit(events, DoneEvent{})
			break
		}

		a.executeAction(rctx, actx, action, events)
	}

	a.endRunSpan(span, len(actx.History), nil)
	return actx, nil
}

// decideNextStep asks the provider for the next action.
func (a *Agent) decideNextStep(ctx context.Context, actx *AgentContext) (*Action, error) {
	prompt, err := a.buildDecisionPrompt(actx)
	if err != nil {
		return nil, err
	}

	resp, err := a.provider.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decision request failed: %w", err)
	}

	action, err := decodeAction(resp.Content)
	if err != nil {
		a.logger.Error("undecodable decision", map[string]interface{}{
			"response": truncateForLog(resp.Content, 200),
		})
		return nil, err
	}
	return action, nil
}

// executeAction runs one use_tool decision. Failures are recorded in
// history but never abort the loop.
func (a *Agent) executeAction(ctx context.Context, actx *AgentContext, action *Action, events chan<- Event) {
	actx.History = append(actx.History,
		fmt.Sprintf("Action: UseTool %s (Reason: %s)", action.Tool, action.Reason))
	emit(events, ThoughtEvent{
		Content: fmt.Sprintf("Decided to use tool '%s' because: %s", action.Tool, action.Reason),
	})
	emit(events, ToolCallEvent{Tool: action.Tool, Args: action.Args})

	tool := a.registry.Get(action.Tool)
	if tool == nil {
		a.logger.Error("tool not found", map[string]interface{}{
			"tool": action.Tool,
		})
		actx.History = append(actx.History,
			fmt.Sprintf("Error: Tool '%s' not found", action.Tool))
		return
	}

	if a.monitor != nil {
		a.monitor.RecordStepStart(action.Tool)
	}

	tctx, span := a.startToolSpan(ctx, action.Tool)
	output, err := tool.Execute(tctx, action.Args)
	a.endToolSpan(span, output, err)

	if err != nil {
		a.logger.Error("tool failed", map[string]interface{}{
			"tool":  action.Tool,
			"error": err.Error(),
		})
		if a.monitor != nil {
			a.monitor.RecordStepComplete(action.Tool, false, err.Error())
		}
		emit(events, ErrorEvent{Error: err.Error()})
		actx.History = append(actx.History, fmt.Sprintf("Error: %s", err))
		return
	}

	if a.monitor != nil {
		a.monitor.RecordStepComplete(action.Tool, true, "")
	}
	emit(events, ToolOutputEvent{Output: truncate(output, eventOutputLimit)})
	actx.History = append(actx.History,
		fmt.Sprintf("Output: %s", truncate(output, historyOutputLimit)))

	// Searches and file reads become part of the gathered context.
	if action.Tool == "search" || action.Tool == "view_file" {
		actx.GatheredInfo = append(actx.GatheredInfo, VerifiedInfo{
			Content:   output,
			Source:    fmt.Sprintf("Tool: %s Args: %v", action.Tool, action.Args),
			Relevance: action.Reason,
		})
	}
}

// truncate cuts a string to at most max bytes.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// truncateForLog truncates a string for logging purposes.
func truncateForLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
