package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider talks to any OpenAI-compatible endpoint through langchaingo.
type OpenAIProvider struct {
	client llms.Model
}

// NewOpenAIProvider creates a provider. An empty baseURL uses the OpenAI API.
func NewOpenAIProvider(apiKey, baseURL string) (*OpenAIProvider, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAIProvider{client: client}, nil
}

// NewOpenAIProviderWithModel wraps an existing langchaingo model.
func NewOpenAIProviderWithModel(model llms.Model) *OpenAIProvider {
	return &OpenAIProvider{client: model}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	imageAt := -1
	if req.Image != nil {
		imageAt = lastUserIndex(req.Messages)
	}

	messages := make([]llms.MessageContent, 0, len(req.Messages))
	for i, msg := range req.Messages {
		var msgType llms.ChatMessageType
		switch msg.Role {
		case RoleSystem:
			msgType = llms.ChatMessageTypeSystem
		case RoleAssistant:
			msgType = llms.ChatMessageTypeAI
		default:
			msgType = llms.ChatMessageTypeHuman
		}
		content := llms.TextParts(msgType, msg.Content)
		if i == imageAt {
			content.Parts = append(content.Parts, llms.ImageURLPart(req.Image.DataURL()))
		}
		messages = append(messages, content)
	}

	opts := []llms.CallOption{
		llms.WithModel(req.Model),
		llms.WithTemperature(req.Temperature),
	}
	if req.JSONSchema != nil {
		opts = append(opts, llms.WithJSONMode())
	}

	response, err := p.client.GenerateContent(ctx, messages, opts...)
	if err != nil {
		if looksLikeQuota(err) {
			return "", &QuotaError{Model: req.Model, Err: err}
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return response.Choices[0].Content, nil
}
