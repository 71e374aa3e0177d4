package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/zenkitchen/backend/internal/llm"
	"github.com/pageza/zenkitchen/backend/internal/service"
)

// MockCompleter is a mock implementation of the model chain
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req llm.Request) (string, string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.String(1), args.Error(2)
}

// MemoryDraftCache is an in-memory draft cache for tests
type MemoryDraftCache struct {
	mu      sync.Mutex
	batches map[string]service.DraftBatch
	// SaveErr, when set, is returned by every Save.
	SaveErr error
}

func NewMemoryDraftCache() *MemoryDraftCache {
	return &MemoryDraftCache{batches: make(map[string]service.DraftBatch)}
}

func (c *MemoryDraftCache) Save(ctx context.Context, batch *service.DraftBatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SaveErr != nil {
		return c.SaveErr
	}
	c.batches[batch.ID] = *batch
	return nil
}

func (c *MemoryDraftCache) Get(ctx context.Context, id string) (*service.DraftBatch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	batch, ok := c.batches[id]
	if !ok {
		return nil, service.ErrDraftNotFound
	}
	return &batch, nil
}

func (c *MemoryDraftCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.batches, id)
	return nil
}
