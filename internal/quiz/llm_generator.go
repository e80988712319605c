package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vatly/vatly/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the model for one question set covering every item.
func (g *LLMGenerator) Generate(ctx context.Context, items []RequestItem) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(items)},
		},
		Schema:      ResultSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Err: fmt.Errorf("LLM generation failed: %w", err)}
	}

	content := normalizeContent(resp.Content)
	if err := llm.ValidateResponse(contractSchema, content); err != nil {
		return nil, &GenerationError{Err: err}
	}

	var result Result
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, &GenerationError{Err: fmt.Errorf("failed to parse LLM response: %w", err)}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&result, items); verr != nil {
			return nil, &GenerationError{Err: verr}
		}
	}

	return &result, nil
}

// normalizeContent unwraps a response that arrived as a JSON string, as
// providers do for unstructured text, and strips markdown code fences the
// model may add despite instructions.
func normalizeContent(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			trimmed = []byte(s)
		}
	}

	text := string(trimmed)
	if strings.Contains(text, "```") {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
	}
	return json.RawMessage(strings.TrimSpace(text))
}
