package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures a model backend.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter",
	// or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // override for OpenAI-compatible endpoints
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

// RetryConfig shapes the backoff applied to transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig picks the cheap fast models. An interview makes a
// couple dozen short structured calls, so latency matters more than
// raw capability.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays VETTA_* environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setEnv(&cfg.Provider, "VETTA_LLM_PROVIDER")

	setEnv(&cfg.Anthropic.APIKey, "VETTA_ANTHROPIC_API_KEY")
	setEnv(&cfg.Anthropic.Model, "VETTA_ANTHROPIC_MODEL")

	setEnv(&cfg.OpenAI.APIKey, "VETTA_OPENAI_API_KEY")
	setEnv(&cfg.OpenAI.Model, "VETTA_OPENAI_MODEL")
	setEnv(&cfg.OpenAI.BaseURL, "VETTA_OPENAI_BASE_URL")

	setEnv(&cfg.Gemini.APIKey, "VETTA_GEMINI_API_KEY")
	setEnv(&cfg.Gemini.Model, "VETTA_GEMINI_MODEL")

	setEnv(&cfg.OpenRouter.APIKey, "VETTA_OPENROUTER_API_KEY")
	setEnv(&cfg.OpenRouter.Model, "VETTA_OPENROUTER_MODEL")

	return cfg
}

func setEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard API key variables when no
// explicit VETTA_* configuration was given. Priority: Gemini, OpenAI,
// Anthropic, OpenRouter. Returns false when no key is present.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	probes := []struct {
		envKey   string
		provider string
		dst      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.envKey); k != "" {
			cfg.Provider = p.provider
			*p.dst = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks the selected provider has the key it needs.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("VETTA_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("VETTA_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("VETTA_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("VETTA_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No key.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
