package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/zenkitchen/backend/config"
)

const redisDialTimeout = 5 * time.Second

// NewRedisClient opens the cache backing recognition drafts and the AI rate
// limiter. A REDIS_URL takes precedence over the host/port/db settings.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("draft cache unreachable at %s: %w", opts.Addr, err)
	}

	log.Printf("[Redis] draft cache ready at %s (db %d)", opts.Addr, opts.DB)
	return client, nil
}

func redisOptions(cfg *config.Config) (*redis.Options, error) {
	if cfg.RedisURL == "" {
		return &redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return opts, nil
}
