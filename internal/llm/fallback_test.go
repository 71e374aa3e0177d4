package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Complete(ctx context.Context, req Request) (string, error) {
	args := m.Called(ctx, req.Model)
	return args.String(0), args.Error(1)
}

func TestModelChainFallsThroughOnQuota(t *testing.T) {
	p := new(MockProvider)
	p.On("Complete", mock.Anything, "A").Return("", &QuotaError{Model: "A", Err: errors.New("429")}).Once()
	p.On("Complete", mock.Anything, "B").Return("from B", nil).Once()

	var attempts []string
	chain, err := NewModelChain(p, []string{"A", "B"}, WithAttemptObserver(func(_, model string, outcome Outcome) {
		attempts = append(attempts, model+":"+string(outcome))
	}))
	require.NoError(t, err)

	out, model, err := chain.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "from B", out)
	assert.Equal(t, "B", model)
	assert.Equal(t, []string{"A:quota", "B:success"}, attempts)
	p.AssertExpectations(t)
}

func TestModelChainAbortsOnOtherErrors(t *testing.T) {
	p := new(MockProvider)
	p.On("Complete", mock.Anything, "A").Return("", errors.New("bad request")).Once()

	chain, err := NewModelChain(p, []string{"A", "B"})
	require.NoError(t, err)

	_, model, err := chain.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, "A", model)
	assert.False(t, IsQuotaError(err))
	p.AssertNotCalled(t, "Complete", mock.Anything, "B")
}

func TestModelChainExhausted(t *testing.T) {
	p := new(MockProvider)
	p.On("Complete", mock.Anything, "A").Return("", &QuotaError{Model: "A", Err: errors.New("quota")}).Once()
	p.On("Complete", mock.Anything, "B").Return("", &QuotaError{Model: "B", Err: errors.New("quota")}).Once()

	chain, err := NewModelChain(p, []string{"A", "B"})
	require.NoError(t, err)

	_, _, err = chain.Complete(context.Background(), Request{})
	var exhausted *AllModelsExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, []string{"A", "B"}, exhausted.Models)
	p.AssertExpectations(t)
}

func TestModelChainStopsOnCancelledContext(t *testing.T) {
	p := new(MockProvider)
	chain, err := NewModelChain(p, []string{"A"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = chain.Complete(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	p.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestNewModelChainValidates(t *testing.T) {
	_, err := NewModelChain(nil, []string{"A"})
	assert.Error(t, err)

	_, err = NewModelChain(new(MockProvider), nil)
	assert.Error(t, err)
}

func TestLooksLikeQuota(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"API returned unexpected status code: 429", true},
		{"API returned unexpected status code: 429: rate limit reached", true},
		{"HTTP 429 Too Many Requests", true},
		{"RESOURCE_EXHAUSTED: quota exceeded", true},
		{"invalid api key", false},
		{"API returned unexpected status code: 400: invalid image req_42953", false},
		{"Post \"https://gw.example.com/v1/429/chat\": connection refused", false},
		{"status code: 500: upstream returned 4290 tokens", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, looksLikeQuota(errors.New(tt.msg)), tt.msg)
	}
}
