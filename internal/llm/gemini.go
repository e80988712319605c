package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash":   "gemini-2.5-flash",
	"gemini-pro":     "gemini-2.5-pro",
	"gemini-3-flash": "gemini-3-flash-preview",
}

// GeminiProvider talks to the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a provider from cfg.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	cc := &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	gc := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		gc.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, buildGeminiContents(req.Messages), gc)
	if err != nil {
		// genai returns APIError by value.
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, httpFailure(apiErr.Code, nil, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	resp := Response{Model: p.model, StopReason: StopEnd}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		resp.StopReason = StopMaxTokens
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return finish(req, result.Text(), resp)
}

func (p *GeminiProvider) ModelID() string { return p.model }

func buildGeminiContents(msgs []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		var parts []*genai.Part
		for _, img := range m.Images {
			parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
		}
		if m.Content != "" || len(parts) == 0 {
			parts = append(parts, genai.NewPartFromText(m.Content))
		}
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromParts(parts, role))
	}
	return contents
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// buildGeminiSchema converts the subset of JSON Schema Gemini accepts.
// Conditional keywords (if/then, allOf) have no equivalent and are
// dropped; ValidateResponse still enforces them on the reply.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{
		Description: stringValue(def["description"]),
		Enum:        stringList(def["enum"]),
		Required:    stringList(def["required"]),
		MinItems:    intValue(def["minItems"]),
		MaxItems:    intValue(def["maxItems"]),
		Minimum:     floatValue(def["minimum"]),
		Maximum:     floatValue(def["maximum"]),
	}
	if t, ok := geminiTypes[stringValue(def["type"])]; ok {
		s.Type = t
	} else {
		s.Type = genai.TypeString
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				s.Properties[name] = buildGeminiSchema(sub)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = buildGeminiSchema(items)
	}
	return s
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		var out []string
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func intValue(v any) *int64 {
	switch n := v.(type) {
	case int:
		return genai.Ptr(int64(n))
	case int64:
		return &n
	case float64:
		return genai.Ptr(int64(n))
	}
	return nil
}

func floatValue(v any) *float64 {
	switch n := v.(type) {
	case int:
		return genai.Ptr(float64(n))
	case int64:
		return genai.Ptr(float64(n))
	case float64:
		return &n
	}
	return nil
}
