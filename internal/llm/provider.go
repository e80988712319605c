package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Quiz generation sends one user
	// message; chat replays the whole transcript.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text as json.RawMessage.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// Images are inline image parts sent before Content. Providers without
	// vision support reject messages that carry images.
	Images []Image
}

// Image is an inline binary image part.
type Image struct {
	MIMEType string // e.g. "image/png"
	Data     []byte
}

// DataURI encodes the image as a base64 data URI.
func (img Image) DataURI() string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// local validation). Kebab-case, e.g. "physics-quiz".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. When no Schema was
	// provided, this is the raw text response wrapped as a JSON string;
	// use Text to unwrap it.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response as plain text. A JSON string is unwrapped;
// anything else is returned as-is.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// finish fills in resp.Content from a backend's reply text. Without a
// schema the text is wrapped as a JSON string. With one, the text must
// validate; a structured reply cut off at MaxTokens is never valid JSON
// worth checking and is reported as ErrMaxTokensExceeded.
func finish(req Request, text string, resp Response) (*Response, error) {
	if req.Schema == nil {
		resp.Content = textContent(text)
		return &resp, nil
	}
	raw := json.RawMessage(text)
	if resp.StopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: raw}
	}
	if err := ValidateResponse(req.Schema, raw); err != nil {
		return nil, err
	}
	resp.Content = raw
	return &resp, nil
}

// httpFailure maps a backend's HTTP status onto the llm error types.
// header may be nil when the SDK does not expose the response.
func httpFailure(status int, header http.Header, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	case status == http.StatusRequestTimeout, status >= 500, status == 0:
		return &ErrProviderUnavailable{Err: err}
	default:
		return &ErrRequestRejected{Status: status, Err: err}
	}
}

// retryAfter reads retry-after-ms, then retry-after as seconds or an HTTP
// date. Zero means no hint.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	if ms, err := strconv.ParseFloat(h.Get("Retry-After-Ms"), 64); err == nil && ms > 0 {
		return time.Duration(ms * float64(time.Millisecond))
	}
	v := h.Get("Retry-After")
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

// textContent wraps an unstructured text reply as a JSON string.
func textContent(text string) json.RawMessage {
	data, _ := json.Marshal(text)
	return data
}
