// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the engine configuration.
type Config struct {
	Engine    EngineConfig    `toml:"engine"`
	LLM       LLMConfig       `toml:"llm"`
	Monitor   MonitorConfig   `toml:"monitor"`
	Events    EventsConfig    `toml:"events"`    // Event publishing over NATS
	Telemetry TelemetryConfig `toml:"telemetry"` // OTLP tracing
}

// EngineConfig contains engine-level settings.
type EngineConfig struct {
	Workspace string `toml:"workspace"` // Root directory tools operate in
}

// LLMConfig contains decision provider settings.
type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	MaxTokens int    `toml:"max_tokens"`
	BaseURL   string `toml:"base_url"` // Custom API endpoint (OpenRouter, LiteLLM, Ollama)
}

// MonitorConfig contains health monitor thresholds.
type MonitorConfig struct {
	StuckThresholdSeconds   int `toml:"stuck_threshold_seconds"`   // default 120
	TimeoutReferenceSeconds int `toml:"timeout_reference_seconds"` // default 60
}

// EventsConfig contains event publishing settings.
type EventsConfig struct {
	Enabled bool   `toml:"enabled"`
	NATSURL string `toml:"nats_url"` // e.g. nats://localhost:4222
	Buffer  int    `toml:"buffer"`   // event channel capacity (default 64)
}

// TelemetryConfig contains telemetry settings.
type TelemetryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"` // OTLP endpoint (e.g., localhost:4317)
	Protocol string `toml:"protocol"` // grpc (default) or http
	Insecure bool   `toml:"insecure"` // Disable TLS (default false)
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		Engine: EngineConfig{
			Workspace: ".",
		},
		LLM: LLMConfig{
			MaxTokens: 4096,
		},
		Monitor: MonitorConfig{
			StuckThresholdSeconds:   120,
			TimeoutReferenceSeconds: 60,
		},
		Events: EventsConfig{
			NATSURL: "nats://localhost:4222",
			Buffer:  64,
		},
		Telemetry: TelemetryConfig{
			Protocol: "noop",
		},
	}
}

// LoadFile loads configuration from a TOML file.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads configuration from taskengine.toml in the current
// directory, falling back to defaults when the file is absent.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, "taskengine.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// GetAPIKey returns the API key from the configured environment variable.
// If api_key_env is not set, uses the default env var for the provider.
func (c *Config) GetAPIKey() string {
	envVar := c.LLM.APIKeyEnv
	if envVar == "" {
		envVar = DefaultAPIKeyEnv(c.LLM.Provider)
	}
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}

// DefaultAPIKeyEnv returns the default environment variable name for a provider.
func DefaultAPIKeyEnv(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "google":
		return "GOOGLE_API_KEY"
	case "mistral":
		return "MISTRAL_API_KEY"
	case "groq":
		return "GROQ_API_KEY"
	default:
		return ""
	}
}
