package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	return &OpenAIProvider{
		client: client,
		model:  "gpt-4o-mini",
	}
}

func openAIReply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	})
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		openAIReply(w, `{"quantity":"Công suất","value":100}`)
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "Bạn là giáo viên Vật lý.",
		Messages:  []Message{{Role: RoleUser, Content: "Tạo câu hỏi."}},
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	format, ok := body["response_format"].(map[string]any)
	if !ok || format["type"] != "json_schema" {
		t.Fatalf("expected json_schema response format, got %v", body["response_format"])
	}
}

func TestOpenAIProvider_TextWithImage(t *testing.T) {
	var body struct {
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		openAIReply(w, "Chu kì $T = 2\\pi\\sqrt{m/k}$.")
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System: "sys",
		Messages: []Message{
			{Role: RoleUser, Content: "Xin chào"},
			{Role: RoleAssistant, Content: "Chào em"},
			{Role: RoleUser, Content: "Giải giúp", Images: []Image{{MIMEType: "image/jpeg", Data: []byte("jpg")}}},
		},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != `Chu kì $T = 2\pi\sqrt{m/k}$.` {
		t.Fatalf("unexpected text %q", resp.Text())
	}

	if len(body.Messages) != 4 {
		t.Fatalf("expected system + 3 messages, got %d", len(body.Messages))
	}
	if body.Messages[2].Role != "assistant" {
		t.Fatalf("expected assistant role, got %q", body.Messages[2].Role)
	}
	last := string(body.Messages[3].Content)
	if !strings.Contains(last, `"image_url"`) || !strings.Contains(last, "data:image/jpeg;base64,") {
		t.Fatalf("expected image part in last message, got %s", last)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_BaseURLOverride(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://example.test/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}

func TestOpenAIProvider_UnknownModelIsRejected(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "invalid_request_error",
				"message": "The model `gpt-9` does not exist",
				"code":    "model_not_found",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var rej *ErrRequestRejected
	if !errors.As(err, &rej) || rej.Status != http.StatusNotFound {
		t.Fatalf("expected ErrRequestRejected(404), got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_LengthFinishOnPlainText(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o-mini",
			"choices": []map[string]any{{
				"message":       map[string]any{"role": "assistant", "content": "Động lượng bảo toàn khi"},
				"finish_reason": "length",
			}},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 8,
	})
	if err != nil {
		t.Fatalf("plain text replies keep their partial text, got: %v", err)
	}
	if resp.StopReason != StopMaxTokens || resp.Text() != "Động lượng bảo toàn khi" {
		t.Fatalf("unexpected response %q (%s)", resp.Text(), resp.StopReason)
	}
}
