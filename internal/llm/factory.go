package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/vatly/vatly/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware. A nil
// eventRepo skips event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base, so every attempt is
	// logged and the timeout covers all of them.
	wrapped := base
	if eventRepo != nil {
		wrapped = WithLogging(base, eventRepo)
	}
	return WithTimeout(WithRetry(wrapped, cfg.Retry), cfg.Timeout), nil
}

// NewProviderFromEnv builds a provider from VATLY_* variables. When
// VATLY_LLM_PROVIDER is unset and the default provider has no key, the
// vendor API key variables are tried in turn.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if os.Getenv("VATLY_LLM_PROVIDER") == "" && cfg.Validate() != nil {
		if found, ok := DiscoverConfig(); ok {
			found.Timeout, found.Retry = cfg.Timeout, cfg.Retry
			cfg = found
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}
