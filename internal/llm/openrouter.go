package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is the OpenAI adapter pointed at OpenRouter. Model
// IDs there are vendor-qualified ("google/gemini-2.5-flash") and pass
// through unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider builds a provider from cfg.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultOpenRouterBaseURL
	}
	return &OpenRouterProvider{newOpenAIClient(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: base}, nil)}, nil
}
