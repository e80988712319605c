package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vatly/vatly/internal/store"
)

// LoggingProvider appends one store event per Generate call, successful
// or not, so `vatly llm` can show what was asked and what came back.
type LoggingProvider struct {
	inner Provider
	repo  store.EventRepo
}

// WithLogging records every call made through p in repo.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, repo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    backendName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	switch {
	case resp != nil:
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	case err != nil:
		ev.ResponseBody = string(rejectedContent(err))
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	slog.Debug("llm call", "purpose", ev.Purpose, "model", ev.Model, "latency_ms", ev.LatencyMs, "ok", ev.Success)
	if werr := l.repo.AppendLLMRequest(ctx, ev); werr != nil {
		// The event log is diagnostics only.
		slog.Warn("record llm call", "error", werr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// rejectedContent is the model output carried by a schema or truncation
// failure, which is what one wants to see when a quiz batch fails.
func rejectedContent(err error) json.RawMessage {
	var (
		invalid *ErrInvalidResponse
		trunc   *ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &invalid):
		return invalid.Content
	case errors.As(err, &trunc):
		return trunc.Content
	}
	return nil
}

// transcript renders req as tagged sections: [system], one per message
// with image placeholders, then [schema: name] and its definition.
func transcript(req Request) string {
	var b strings.Builder
	section := func(tag, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", tag, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		var body strings.Builder
		for _, img := range m.Images {
			fmt.Fprintf(&body, "[image: %s, %d bytes]\n", img.MIMEType, len(img.Data))
		}
		body.WriteString(m.Content)
		section(string(m.Role), body.String())
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func backendName(p Provider) string {
	switch p.(type) {
	case *GeminiProvider:
		return "gemini"
	case *AnthropicProvider:
		return "anthropic"
	case *OpenRouterProvider:
		return "openrouter"
	case *OpenAIProvider:
		return "openai"
	case *MockProvider:
		return "mock"
	}
	return p.ModelID()
}
