package agent

import "testing"

func TestDecodeAction_UseTool(t *testing.T) {
	action, err := decodeAction(`{"action":"use_tool","tool":"search","args":{"query":"auth"},"reason":"find auth code"}`)
	if err != nil {
		t.Fatalf("decodeAction() error = %v", err)
	}
	if action.Kind != ActionUseTool {
		t.Errorf("Kind = %q", action.Kind)
	}
	if action.Tool != "search" || action.Reason != "find auth code" {
		t.Errorf("Tool/Reason = %q/%q", action.Tool, action.Reason)
	}
	if action.Args["query"] != "auth" {
		t.Errorf("Args = %v", action.Args)
	}
}

func TestDecodeAction_Done(t *testing.T) {
	action, err := decodeAction(`{"action":"done"}`)
	if err != nil {
		t.Fatalf("decodeAction() error = %v", err)
	}
	if action.Kind != ActionDone {
		t.Errorf("Kind = %q", action.Kind)
	}
}

func TestDecodeAction_FencedResponse(t *testing.T) {
	action, err := decodeAction("```json\n{\"action\": \"done\"}\n```")
	if err != nil {
		t.Fatalf("decodeAction() error = %v", err)
	}
	if action.Kind != ActionDone {
		t.Errorf("Kind = %q", action.Kind)
	}
}

func TestDecodeAction_UnknownAction(t *testing.T) {
	if _, err := decodeAction(`{"action":"reflect"}`); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestDecodeAction_MissingToolName(t *testing.T) {
	if _, err := decodeAction(`{"action":"use_tool","args":{}}`); err == nil {
		t.Error("expected error for use_tool without tool name")
	}
}

func TestDecodeAction_NotJSON(t *testing.T) {
	if _, err := decodeAction("let me think about this"); err == nil {
		t.Error("expected error for prose response")
	}
}

func TestDecodeAction_NilArgsDefaulted(t *testing.T) {
	action, err := decodeAction(`{"action":"use_tool","tool":"list_dir","reason":"explore"}`)
	if err != nil {
		t.Fatalf("decodeAction() error = %v", err)
	}
	if action.Args == nil {
		t.Error("Args should default to an empty map")
	}
}
