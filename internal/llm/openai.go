package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider talks to the Chat Completions API, or to any server that
// speaks it when BaseURL is set.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds a provider from cfg.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return newOpenAIClient(cfg, openaiModels), nil
}

// newOpenAIClient resolves cfg.Model through models, which may be nil for
// gateways whose model IDs are used verbatim.
func newOpenAIClient(cfg OpenAIConfig, models map[string]string) *OpenAIProvider {
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(conf), model: resolveModel(cfg.Model, models)}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            openAITurns(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("encode schema %s: %w", req.Schema.Name, err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var (
			apiErr *openai.APIError
			reqErr *openai.RequestError
		)
		switch {
		case errors.As(err, &apiErr):
			return nil, httpFailure(apiErr.HTTPStatusCode, nil, err)
		case errors.As(err, &reqErr):
			return nil, httpFailure(reqErr.HTTPStatusCode, nil, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s returned no choices", resp.Model)}
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	return finish(req, choice.Message.Content, Response{
		Model:      resp.Model,
		StopReason: stop,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	})
}

func (p *OpenAIProvider) ModelID() string { return p.model }

// openAITurns prepends the system prompt. Plain turns use Content; a turn
// carrying images switches to MultiContent with the images first.
func openAITurns(req Request) []openai.ChatCompletionMessage {
	turns := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		turns = append(turns, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		turn := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
		if m.Role == RoleAssistant {
			turn.Role = openai.ChatMessageRoleAssistant
		}
		if len(m.Images) == 0 {
			turn.Content = m.Content
			turns = append(turns, turn)
			continue
		}
		for _, img := range m.Images {
			turn.MultiContent = append(turn.MultiContent, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: img.DataURI()},
			})
		}
		if m.Content != "" {
			turn.MultiContent = append(turn.MultiContent, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: m.Content})
		}
		turns = append(turns, turn)
	}
	return turns
}
