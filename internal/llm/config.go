package llm

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "openrouter" or
	// "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call across all of its retries. A full
	// quiz batch is long, hence the generous default.
	Timeout time.Duration
}

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIConfig configures the OpenAI backend. BaseURL also points it at
// OpenAI-compatible servers.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenRouterConfig configures the OpenRouter backend.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig is Gemini Flash with three attempts and a 90s budget.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 90 * time.Second,
	}
}

// envSetting binds one VATLY_* variable to a Config field. set reports
// whether the value was usable.
type envSetting struct {
	name string
	set  func(c *Config, v string) bool
}

func str(field func(*Config) *string) func(*Config, string) bool {
	return func(c *Config, v string) bool { *field(c) = v; return true }
}

var envSettings = []envSetting{
	{"VATLY_LLM_PROVIDER", str(func(c *Config) *string { return &c.Provider })},

	{"VATLY_GEMINI_API_KEY", str(func(c *Config) *string { return &c.Gemini.APIKey })},
	{"VATLY_GEMINI_MODEL", str(func(c *Config) *string { return &c.Gemini.Model })},
	{"VATLY_GEMINI_BASE_URL", str(func(c *Config) *string { return &c.Gemini.BaseURL })},

	{"VATLY_OPENAI_API_KEY", str(func(c *Config) *string { return &c.OpenAI.APIKey })},
	{"VATLY_OPENAI_MODEL", str(func(c *Config) *string { return &c.OpenAI.Model })},
	{"VATLY_OPENAI_BASE_URL", str(func(c *Config) *string { return &c.OpenAI.BaseURL })},

	{"VATLY_ANTHROPIC_API_KEY", str(func(c *Config) *string { return &c.Anthropic.APIKey })},
	{"VATLY_ANTHROPIC_MODEL", str(func(c *Config) *string { return &c.Anthropic.Model })},
	{"VATLY_ANTHROPIC_BASE_URL", str(func(c *Config) *string { return &c.Anthropic.BaseURL })},

	{"VATLY_OPENROUTER_API_KEY", str(func(c *Config) *string { return &c.OpenRouter.APIKey })},
	{"VATLY_OPENROUTER_MODEL", str(func(c *Config) *string { return &c.OpenRouter.Model })},
	{"VATLY_OPENROUTER_BASE_URL", str(func(c *Config) *string { return &c.OpenRouter.BaseURL })},

	{"VATLY_LLM_TIMEOUT", func(c *Config, v string) bool {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return false
		}
		c.Timeout = d
		return true
	}},
	{"VATLY_LLM_MAX_ATTEMPTS", func(c *Config, v string) bool {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return false
		}
		c.Retry.MaxAttempts = n
		return true
	}},
}

// ConfigFromEnv overlays the VATLY_* variables on DefaultConfig. Unset
// variables and unparseable durations or counts keep their defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, s := range envSettings {
		if v := os.Getenv(s.name); v != "" && !s.set(&cfg, v) {
			slog.Warn("ignoring invalid LLM setting", "var", s.name, "value", v)
		}
	}
	return cfg
}

// backend ties a provider name to its key field and the env variables
// that name it.
type backend struct {
	provider  string
	keyVar    string // VATLY_* variable, named in errors
	vendorVar string // the vendor's own variable, used for discovery
	key       func(*Config) *string
}

// backends is in discovery order.
var backends = []backend{
	{"gemini", "VATLY_GEMINI_API_KEY", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"openai", "VATLY_OPENAI_API_KEY", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"anthropic", "VATLY_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"openrouter", "VATLY_OPENROUTER_API_KEY", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// DiscoverConfig picks the first backend whose vendor key variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ...) is set. It reports false when
// none is.
func DiscoverConfig() (Config, bool) {
	for _, b := range backends {
		if k := os.Getenv(b.vendorVar); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = b.provider
			*b.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider exists and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	for _, b := range backends {
		if b.provider != c.Provider {
			continue
		}
		if *b.key(&c) == "" {
			return fmt.Errorf("%s is required for the %s provider", b.keyVar, b.provider)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
