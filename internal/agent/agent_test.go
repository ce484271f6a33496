package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/vinayprograms/agentkit/llm"

	"github.com/vinayprograms/taskengine/internal/monitor"
	"github.com/vinayprograms/taskengine/internal/tools"
)

// mockDecisionProvider returns canned decisions in order, repeating the
// last one once exhausted.
type mockDecisionProvider struct {
	responses []string
	callCount int
}

func (m *mockDecisionProvider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	idx := m.callCount
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	m.callCount++
	return &llm.ChatResponse{Content: m.responses[idx]}, nil
}

func (m *mockDecisionProvider) ChatStream(ctx context.Context, req llm.ChatRequest, callback func(string)) (*llm.ChatResponse, error) {
	return m.Chat(ctx, req)
}

func (m *mockDecisionProvider) Name() string { return "mock-decision" }

// stubTool returns a fixed output or error.
type stubTool struct {
	name   string
	output string
	err    error
	calls  int
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub" }
func (s *stubTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (s *stubTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	s.calls++
	return s.output, s.err
}

func useToolDecision(tool, reason string) string {
	return fmt.Sprintf(`{"action":"use_tool","tool":%q,"args":{"query":"x"},"reason":%q}`, tool, reason)
}

const doneDecision = `{"action":"done"}`

func TestRun_ImmediateDone(t *testing.T) {
	provider := &mockDecisionProvider{responses: []string{doneDecision}}
	agent := New(provider, tools.NewRegistry())

	events := make(chan Event, 16)
	actx, err := agent.Run(context.Background(), "do nothing", events)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if provider.callCount != 1 {
		t.Errorf("provider called %d times, want 1", provider.callCount)
	}
	if len(actx.History) != 0 {
		t.Errorf("history = %v, want empty", actx.History)
	}
	if len(actx.GatheredInfo) != 0 {
		t.Errorf("gathered info = %v, want empty", actx.GatheredInfo)
	}

	var sawDone bool
	close(events)
	for ev := range events {
		if _, ok := ev.(DoneEvent); ok {
			sawDone = true
		}
	}
	if !sawDone {
		t.Error("no Done event emitted")
	}
}

func TestRun_UnknownToolExhaustsSteps(t *testing.T) {
	provider := &mockDecisionProvider{
		responses: []string{useToolDecision("nonexistent", "testing")},
	}
	agent := New(provider, tools.NewRegistry())

	actx, err := agent.Run(context.Background(), "task", nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if provider.callCount != maxSteps {
		t.Errorf("provider called %d times, want %d", provider.callCount, maxSteps)
	}
	var notFound int
	for _, line := range actx.History {
		if line == "Error: Tool 'nonexistent' not found" {
			notFound++
		}
	}
	if notFound != maxSteps {
		t.Errorf("got %d not-found history lines, want %d", notFound, maxSteps)
	}
}

func TestRun_ToolFailureNotFatal(t *testing.T) {
	failing := &stubTool{name: "broken", err: fmt.Errorf("disk on fire")}
	registry := tools.NewRegistry()
	registry.Register(failing)

	provider := &mockDecisionProvider{responses: []string{
		useToolDecision("broken", "try it"),
		doneDecision,
	}}
	agent := New(provider, registry)

	actx, err := agent.Run(context.Background(), "task", nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if failing.calls != 1 {
		t.Errorf("tool called %d times, want 1", failing.calls)
	}
	var sawError bool
	for _, line := range actx.History {
		if strings.Contains(line, "disk on fire") {
			sawError = true
		}
	}
	if !sawError {
		t.Errorf("history %v missing tool error", actx.History)
	}
}

func TestRun_UndecodableDecisionFatal(t *testing.T) {
	provider := &mockDecisionProvider{responses: []string{"I think we should look around first."}}
	agent := New(provider, tools.NewRegistry())

	if _, err := agent.Run(context.Background(), "task", nil); err == nil {
		t.Fatal("expected error for undecodable decision")
	}
}

func TestRun_UnknownActionFatal(t *testing.T) {
	provider := &mockDecisionProvider{responses: []string{`{"action":"think"}`}}
	agent := New(provider, tools.NewRegistry())

	if _, err := agent.Run(context.Background(), "task", nil); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestRun_GatheredInfoOnlyForSearchAndViewFile(t *testing.T) {
	registry := tools.NewRegistry()
	registry.Register(&stubTool{name: "search", output: "found: pkg/client.go\n...detail"})
	registry.Register(&stubTool{name: "run_command", output: "exit 0"})

	provider := &mockDecisionProvider{responses: []string{
		useToolDecision("search", "find the client"),
		useToolDecision("run_command", "sanity check"),
		doneDecision,
	}}
	agent := New(provider, registry)

	actx, err := agent.Run(context.Background(), "task", nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(actx.GatheredInfo) != 1 {
		t.Fatalf("gathered info = %d entries, want 1", len(actx.GatheredInfo))
	}
	info := actx.GatheredInfo[0]
	if !strings.HasPrefix(info.Source, "Tool: search") {
		t.Errorf("Source = %q", info.Source)
	}
	if info.Relevance != "find the client" {
		t.Errorf("Relevance = %q", info.Relevance)
	}
	if !strings.HasPrefix(info.Content, "found: pkg/client.go") {
		t.Errorf("Content = %q", info.Content)
	}
}

func TestRun_TruncatesPreviews(t *testing.T) {
	long := strings.Repeat("x", 2000)
	registry := tools.NewRegistry()
	registry.Register(&stubTool{name: "view_file", output: long})

	provider := &mockDecisionProvider{responses: []string{
		useToolDecision("view_file", "read it"),
		doneDecision,
	}}
	agent := New(provider, registry)

	events := make(chan Event, 16)
	actx, err := agent.Run(context.Background(), "task", events)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var outputLine string
	for _, line := range actx.History {
		if strings.HasPrefix(line, "Output: ") {
			outputLine = line
		}
	}
	if len(outputLine) != len("Output: ")+historyOutputLimit {
		t.Errorf("history output line length = %d", len(outputLine))
	}

	close(events)
	for ev := range events {
		if out, ok := ev.(ToolOutputEvent); ok {
			if len(out.Output) != eventOutputLimit {
				t.Errorf("event output length = %d, want %d", len(out.Output), eventOutputLimit)
			}
		}
	}

	// Gathered info keeps the full output.
	if len(actx.GatheredInfo) != 1 || len(actx.GatheredInfo[0].Content) != len(long) {
		t.Error("gathered info should keep the untruncated output")
	}
}

func TestRun_FullEventChannelDoesNotBlock(t *testing.T) {
	provider := &mockDecisionProvider{
		responses: []string{useToolDecision("nonexistent", "spin")},
	}
	agent := New(provider, tools.NewRegistry())

	// Capacity 1: nearly every event is dropped. The run must still finish.
	events := make(chan Event, 1)
	if _, err := agent.Run(context.Background(), "task", events); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRun_RecordsStepsOnMonitor(t *testing.T) {
	registry := tools.NewRegistry()
	registry.Register(&stubTool{name: "search", output: "ok"})
	registry.Register(&stubTool{name: "broken", err: fmt.Errorf("nope")})

	provider := &mockDecisionProvider{responses: []string{
		useToolDecision("search", "find"),
		useToolDecision("broken", "try"),
		doneDecision,
	}}
	agent := New(provider, registry)
	mon := monitor.New()
	agent.SetMonitor(mon)

	if _, err := agent.Run(context.Background(), "task", nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	metrics := mon.Metrics()
	if metrics.TotalSteps != 2 {
		t.Errorf("TotalSteps = %d, want 2", metrics.TotalSteps)
	}
	if metrics.SuccessfulSteps != 1 || metrics.FailedSteps != 1 {
		t.Errorf("success/failed = %d/%d, want 1/1", metrics.SuccessfulSteps, metrics.FailedSteps)
	}
}
