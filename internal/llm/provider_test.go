package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("VATLY_LLM_PROVIDER", "openai")
	t.Setenv("VATLY_OPENAI_API_KEY", "sk-test")
	t.Setenv("VATLY_OPENAI_MODEL", "gpt-4o")
	t.Setenv("VATLY_LLM_TIMEOUT", "2m")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("unexpected config: %+v", cfg.OpenAI)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Fatalf("expected 2m timeout, got %s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestConfigFromEnv_RetryAndBaseURLs(t *testing.T) {
	t.Setenv("VATLY_LLM_MAX_ATTEMPTS", "5")
	t.Setenv("VATLY_ANTHROPIC_BASE_URL", "http://proxy.local")
	t.Setenv("VATLY_GEMINI_BASE_URL", "http://gemini.local")

	cfg := ConfigFromEnv()
	if cfg.Retry.MaxAttempts != 5 {
		t.Fatalf("expected 5 attempts, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Anthropic.BaseURL != "http://proxy.local" || cfg.Gemini.BaseURL != "http://gemini.local" {
		t.Fatalf("base URLs not applied: %+v %+v", cfg.Anthropic, cfg.Gemini)
	}
}

func TestConfigFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("VATLY_LLM_MAX_ATTEMPTS", "0")
	t.Setenv("VATLY_LLM_TIMEOUT", "soon")

	cfg := ConfigFromEnv()
	def := DefaultConfig()
	if cfg.Retry.MaxAttempts != def.Retry.MaxAttempts || cfg.Timeout != def.Timeout {
		t.Fatalf("invalid values should be ignored, got attempts=%d timeout=%s", cfg.Retry.MaxAttempts, cfg.Timeout)
	}
}

func TestConfig_ValidateNamesVariable(t *testing.T) {
	err := Config{Provider: "openrouter"}.Validate()
	if err == nil || err.Error() != "VATLY_OPENROUTER_API_KEY is required for the openrouter provider" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefaultConfig_UsesGemini(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Fatalf("expected gemini default, got %q", cfg.Provider)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing key error")
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" || cfg.Gemini.APIKey != "gm-key" {
		t.Fatalf("expected gemini to win, got %+v", cfg)
	}
}

func TestNewProviderFromEnv(t *testing.T) {
	for _, k := range []string{"VATLY_LLM_PROVIDER", "VATLY_GEMINI_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, err := NewProviderFromEnv(context.Background(), nil); err == nil {
		t.Fatal("expected error without any key")
	}

	t.Setenv("VATLY_LLM_PROVIDER", "mock")
	p, err := NewProviderFromEnv(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
}

func TestResponse_Text(t *testing.T) {
	r := &Response{Content: textContent("Lực $F = ma$")}
	if r.Text() != "Lực $F = ma$" {
		t.Fatalf("unexpected text %q", r.Text())
	}

	r = &Response{Content: json.RawMessage(`{"a":1}`)}
	if r.Text() != `{"a":1}` {
		t.Fatalf("structured content should be returned as-is, got %q", r.Text())
	}
}

func TestImage_DataURI(t *testing.T) {
	img := Image{MIMEType: "image/png", Data: []byte("hi")}
	if got := img.DataURI(); got != "data:image/png;base64,aGk=" {
		t.Fatalf("unexpected data URI %q", got)
	}
}
