package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM backend.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in defaults. Tips are short, so the
// cheapest model of each family is the default.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-lite"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash-lite"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
		Timeout: 20 * time.Second,
	}
}

// envBinding maps one WORDIZ_ variable onto a Config field.
type envBinding struct {
	name string
	set  func(*Config, string)
}

var envBindings = []envBinding{
	{"WORDIZ_LLM_PROVIDER", func(c *Config, v string) { c.Provider = v }},
	{"WORDIZ_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"WORDIZ_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"WORDIZ_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"WORDIZ_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"WORDIZ_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"WORDIZ_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"WORDIZ_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
	{"WORDIZ_OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"WORDIZ_OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
	{"WORDIZ_LLM_TIMEOUT", func(c *Config, v string) {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		}
	}},
}

// ConfigFromEnv overlays WORDIZ_ environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, b := range envBindings {
		if v := os.Getenv(b.name); v != "" {
			b.set(&cfg, v)
		}
	}
	return cfg
}

// discoveryOrder lists the vendor key variables probed by DiscoverConfig.
var discoveryOrder = []struct {
	env      string
	provider string
	set      func(*Config, string)
}{
	{"GEMINI_API_KEY", ProviderGemini, func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"OPENAI_API_KEY", ProviderOpenAI, func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"ANTHROPIC_API_KEY", ProviderAnthropic, func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"OPENROUTER_API_KEY", ProviderOpenRouter, func(c *Config, v string) { c.OpenRouter.APIKey = v }},
}

// DiscoverConfig picks the first provider whose vendor API key is set.
// It returns false when none is.
func DiscoverConfig() (Config, bool) {
	for _, d := range discoveryOrder {
		if v := os.Getenv(d.env); v != "" {
			cfg := DefaultConfig()
			cfg.Provider = d.provider
			d.set(&cfg, v)
			return cfg, true
		}
	}
	return Config{}, false
}

// Resolve returns the explicit WORDIZ_ configuration when it is usable,
// otherwise whatever DiscoverConfig finds.
func Resolve() (Config, bool) {
	if cfg := ConfigFromEnv(); os.Getenv("WORDIZ_LLM_PROVIDER") != "" {
		return cfg, cfg.Validate() == nil
	}
	return DiscoverConfig()
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "WORDIZ_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "WORDIZ_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "WORDIZ_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "WORDIZ_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
