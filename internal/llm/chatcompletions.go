package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatCompletionsProvider calls a chat-completions endpoint directly over
// HTTP and asks for JSON-schema structured output when a schema is given.
type ChatCompletionsProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewChatCompletionsProvider(apiKey, apiURL string) *ChatCompletionsProvider {
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}
	return &ChatCompletionsProvider{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	ImageURL map[string]string `json:"image_url,omitempty"`
}

type chatRequest struct {
	Model          string                 `json:"model"`
	Messages       []chatMessage          `json:"messages"`
	ResponseFormat map[string]interface{} `json:"response_format,omitempty"`
	Temperature    float64                `json:"temperature"`
}

func (p *ChatCompletionsProvider) Name() string {
	return "chatcompletions"
}

func (p *ChatCompletionsProvider) Complete(ctx context.Context, req Request) (string, error) {
	reqBody := chatRequest{
		Model:       req.Model,
		Messages:    p.buildMessages(req),
		Temperature: req.Temperature,
	}
	if req.JSONSchema != nil {
		name := req.SchemaName
		if name == "" {
			name = "response"
		}
		reqBody.ResponseFormat = map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   name,
				"schema": req.JSONSchema,
			},
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &QuotaError{Model: req.Model, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions API error: status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return result.Choices[0].Message.Content, nil
}

func (p *ChatCompletionsProvider) buildMessages(req Request) []chatMessage {
	imageAt := -1
	if req.Image != nil {
		imageAt = lastUserIndex(req.Messages)
	}

	out := make([]chatMessage, 0, len(req.Messages))
	for i, msg := range req.Messages {
		if i != imageAt {
			out = append(out, chatMessage{Role: string(msg.Role), Content: msg.Content})
			continue
		}
		out = append(out, chatMessage{
			Role: string(msg.Role),
			Content: []contentPart{
				{Type: "text", Text: msg.Content},
				{Type: "image_url", ImageURL: map[string]string{"url": req.Image.DataURL()}},
			},
		})
	}
	return out
}
