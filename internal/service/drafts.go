package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// DraftTTL is how long recognized drafts wait for review.
const DraftTTL = 24 * time.Hour

// DraftBatch is the result of one recognition, kept until the user confirms
// or discards it.
type DraftBatch struct {
	ID        string             `json:"id"`
	Owner     string             `json:"owner"`
	Hint      string             `json:"hint"`
	Drafts    []models.ItemDraft `json:"drafts"`
	Degraded  bool               `json:"degraded"`
	CreatedAt time.Time          `json:"created_at"`
}

// RedisDraftStore keeps draft batches in Redis with a TTL.
type RedisDraftStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redis: client, ttl: DraftTTL}
}

func draftKey(id string) string {
	return fmt.Sprintf("inventory:draft:%s", id)
}

// Save saves a draft batch to Redis
func (s *RedisDraftStore) Save(ctx context.Context, batch *DraftBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(batch.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

// Get retrieves a draft batch from Redis
func (s *RedisDraftStore) Get(ctx context.Context, id string) (*DraftBatch, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var batch DraftBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &batch, nil
}

// Delete removes a draft batch from Redis
func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
