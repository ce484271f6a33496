// Event contract for the autonomous loop. Consumers subscribe through a
// bounded channel; the loop never blocks on a slow or absent consumer.
package agent

import "encoding/json"

// Event is one observable moment of an agent run. Events marshal as a
// tagged envelope: {"type": "...", "data": {...}}.
type Event interface {
	eventType() string
}

// StepEvent marks the start of a loop iteration.
type StepEvent struct {
	Step     int `json:"step"`
	MaxSteps int `json:"max_steps"`
}

// ThoughtEvent carries the reasoning behind a tool choice.
type ThoughtEvent struct {
	Content string `json:"content"`
}

// ToolCallEvent announces a tool invocation.
type ToolCallEvent struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args"`
}

// ToolOutputEvent carries a truncated preview of a tool's output.
type ToolOutputEvent struct {
	Output string `json:"output"`
}

// ErrorEvent reports a non-fatal failure inside the loop.
type ErrorEvent struct {
	Error string `json:"error"`
}

// DoneEvent signals that the agent decided the task is complete.
type DoneEvent struct{}

func (StepEvent) eventType() string       { return "Step" }
func (ThoughtEvent) eventType() string    { return "Thought" }
func (ToolCallEvent) eventType() string   { return "ToolCall" }
func (ToolOutputEvent) eventType() string { return "ToolOutput" }
func (ErrorEvent) eventType() string      { return "Error" }
func (DoneEvent) eventType() string       { return "Done" }

// MarshalEvent renders an event in the tagged envelope form. DoneEvent
// carries no payload and marshals without a data key.
func MarshalEvent(ev Event) ([]byte, error) {
	if _, ok := ev.(DoneEvent); ok {
		return json.Marshal(map[string]interface{}{"type": ev.eventType()})
	}
	return json.Marshal(map[string]interface{}{
		"type": ev.eventType(),
		"data": ev,
	})
}

// emit sends an event without blocking. A nil channel or a full buffer
// drops the event.
func emit(ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	default:
	}
}
