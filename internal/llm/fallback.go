package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Outcome of a single model attempt, reported to the attempt observer.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeQuota   Outcome = "quota"
	OutcomeError   Outcome = "error"
)

// ModelChain tries models in priority order, one attempt each. A quota
// signal advances to the next model; any other error aborts the chain.
type ModelChain struct {
	provider Provider
	models   []string
	observe  func(provider, model string, outcome Outcome)
}

type ChainOption func(*ModelChain)

// WithAttemptObserver registers a callback invoked after every attempt.
func WithAttemptObserver(fn func(provider, model string, outcome Outcome)) ChainOption {
	return func(c *ModelChain) {
		c.observe = fn
	}
}

func NewModelChain(provider Provider, models []string, opts ...ChainOption) (*ModelChain, error) {
	if provider == nil {
		return nil, errors.New("llm provider is required")
	}
	if len(models) == 0 {
		return nil, errors.New("at least one model must be configured")
	}
	c := &ModelChain{
		provider: provider,
		models:   append([]string(nil), models...),
		observe:  func(string, string, Outcome) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Models returns the configured priority order.
func (c *ModelChain) Models() []string {
	return append([]string(nil), c.models...)
}

// Complete runs req against each model in turn and returns the first answer
// together with the model that produced it. req.Model is overwritten.
func (c *ModelChain) Complete(ctx context.Context, req Request) (string, string, error) {
	var last error
	for _, model := range c.models {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		req.Model = model
		out, err := c.provider.Complete(ctx, req)
		if err == nil {
			c.observe(c.provider.Name(), model, OutcomeSuccess)
			return out, model, nil
		}

		if !IsQuotaError(err) {
			c.observe(c.provider.Name(), model, OutcomeError)
			return "", model, fmt.Errorf("model %s failed: %w", model, err)
		}

		c.observe(c.provider.Name(), model, OutcomeQuota)
		log.Printf("[LLM] Model %s is rate limited, trying next model", model)
		last = err
	}
	return "", "", &AllModelsExhaustedError{Models: c.Models(), Last: last}
}
