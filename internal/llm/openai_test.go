package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// MockLLM is a mock implementation of the langchaingo model interface
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}
	args := m.Called(ctx, messages, opts.Model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func TestOpenAIProviderMapsRolesAndImage(t *testing.T) {
	m := new(MockLLM)
	m.On("GenerateContent", mock.Anything, mock.MatchedBy(func(msgs []llms.MessageContent) bool {
		return len(msgs) == 3 &&
			msgs[0].Role == llms.ChatMessageTypeSystem &&
			msgs[1].Role == llms.ChatMessageTypeAI &&
			msgs[2].Role == llms.ChatMessageTypeHuman &&
			len(msgs[2].Parts) == 2
	}), "gpt-4o-mini").Return(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "你好"}},
	}, nil)

	p := NewOpenAIProviderWithModel(m)
	out, err := p.Complete(context.Background(), Request{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleAssistant, Content: "earlier"},
			{Role: RoleUser, Content: "now"},
		},
		Image: &Image{Data: []byte("img")},
	})
	require.NoError(t, err)
	assert.Equal(t, "你好", out)
	m.AssertExpectations(t)
}

func TestOpenAIProviderQuotaClassification(t *testing.T) {
	m := new(MockLLM)
	m.On("GenerateContent", mock.Anything, mock.Anything, "a").Return(nil, errors.New("API returned unexpected status code: 429: rate limit reached"))
	m.On("GenerateContent", mock.Anything, mock.Anything, "b").Return(nil, errors.New("invalid_api_key"))
	m.On("GenerateContent", mock.Anything, mock.Anything, "c").Return(&llms.ContentResponse{}, nil)

	p := NewOpenAIProviderWithModel(m)
	_, err := p.Complete(context.Background(), Request{Model: "a"})
	assert.True(t, IsQuotaError(err))

	_, err = p.Complete(context.Background(), Request{Model: "b"})
	require.Error(t, err)
	assert.False(t, IsQuotaError(err))

	_, err = p.Complete(context.Background(), Request{Model: "c"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
