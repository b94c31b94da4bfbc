package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config holds LLM provider configuration. An LLM is optional in recall:
// it generates quizzes when the backend's quiz endpoint is not used and
// phrases answers on the ask screen.
type Config struct {
	// Provider is one of the Provider* constants.
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also covers OpenAI-compatible gateways via BaseURL. The
// transcription model is used by the voice recognizer.
type OpenAIConfig struct {
	APIKey             string
	Model              string
	BaseURL            string
	TranscriptionModel string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults used when no environment overrides
// are present.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderAnthropic,
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI: OpenAIConfig{
			Model:              "gpt-4o-mini",
			TranscriptionModel: "whisper-1",
		},
		Gemini: GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envOverrides maps RECALL_* variables onto config fields.
var envOverrides = []struct {
	name string
	set  func(*Config, string)
}{
	{"RECALL_LLM_PROVIDER", func(c *Config, v string) { c.Provider = v }},
	{"RECALL_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"RECALL_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"RECALL_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"RECALL_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"RECALL_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"RECALL_TRANSCRIPTION_MODEL", func(c *Config, v string) { c.OpenAI.TranscriptionModel = v }},
	{"RECALL_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"RECALL_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
}

// ConfigFromEnv builds a Config from RECALL_* environment variables,
// falling back to defaults for unset values. Timeouts are read by the
// config package, which owns duration parsing.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			o.set(&cfg, v)
		}
	}
	return cfg
}

// DiscoverConfig checks the vendor API key variables (Gemini, then OpenAI,
// then Anthropic) and returns a Config for the first provider found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	return Config{}, false
}

// Configured reports whether the selected provider has credentials.
func (c Config) Configured() bool {
	return c.Validate() == nil
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("RECALL_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("RECALL_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("RECALL_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
