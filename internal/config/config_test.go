package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if cfg.LLM.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", cfg.LLM.MaxTokens)
	}
	if cfg.Monitor.StuckThresholdSeconds != 120 {
		t.Errorf("StuckThresholdSeconds = %d, want 120", cfg.Monitor.StuckThresholdSeconds)
	}
	if cfg.Monitor.TimeoutReferenceSeconds != 60 {
		t.Errorf("TimeoutReferenceSeconds = %d, want 60", cfg.Monitor.TimeoutReferenceSeconds)
	}
	if cfg.Events.Buffer != 64 {
		t.Errorf("Buffer = %d, want 64", cfg.Events.Buffer)
	}
}

func TestLoadFile(t *testing.T) {
	content := `
[engine]
workspace = "/tmp/work"

[llm]
provider = "anthropic"
model = "claude-sonnet-4-20250514"
max_tokens = 8192

[monitor]
stuck_threshold_seconds = 30

[events]
enabled = true
nats_url = "nats://broker:4222"
`
	path := filepath.Join(t.TempDir(), "taskengine.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Engine.Workspace != "/tmp/work" {
		t.Errorf("Workspace = %q", cfg.Engine.Workspace)
	}
	if cfg.LLM.Provider != "anthropic" || cfg.LLM.MaxTokens != 8192 {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.Monitor.StuckThresholdSeconds != 30 {
		t.Errorf("StuckThresholdSeconds = %d, want 30", cfg.Monitor.StuckThresholdSeconds)
	}
	// Unset values keep defaults.
	if cfg.Monitor.TimeoutReferenceSeconds != 60 {
		t.Errorf("TimeoutReferenceSeconds = %d, want default 60", cfg.Monitor.TimeoutReferenceSeconds)
	}
	if !cfg.Events.Enabled || cfg.Events.NATSURL != "nats://broker:4222" {
		t.Errorf("Events = %+v", cfg.Events)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[llm\nprovider="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetAPIKey_DefaultEnvPerProvider(t *testing.T) {
	cfg := New()
	cfg.LLM.Provider = "anthropic"
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	if got := cfg.GetAPIKey(); got != "sk-test" {
		t.Errorf("GetAPIKey() = %q", got)
	}
}

func TestGetAPIKey_ExplicitEnv(t *testing.T) {
	cfg := New()
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIKeyEnv = "MY_KEY"
	t.Setenv("MY_KEY", "custom")

	if got := cfg.GetAPIKey(); got != "custom" {
		t.Errorf("GetAPIKey() = %q", got)
	}
}
