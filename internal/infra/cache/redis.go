// Package cache provides the Redis-backed verdict cache. Verdicts are
// keyed by the SHA-256 of the uploaded image bytes, so a re-upload of
// the exact same scan is answered without re-running OCR and matching.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

const keyPrefix = "educred:verdict:"

type RedisVerdictCache struct {
	client *redis.Client
}

func NewRedisVerdictCache(addr, password string, db int) (*RedisVerdictCache, error) {
	if addr == "" {
		return nil, errors.New("redis addr required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisVerdictCache{client: client}, nil
}

func (c *RedisVerdictCache) Get(ctx context.Context, key string) (*domain.CachedVerdict, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var entry domain.CachedVerdict
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry is treated as a miss so the pipeline can
		// overwrite it with a fresh verdict.
		return nil, false, nil
	}
	return &entry, true, nil
}

func (c *RedisVerdictCache) Put(ctx context.Context, key string, entry domain.CachedVerdict, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (c *RedisVerdictCache) Close() error {
	return c.client.Close()
}
