package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/xi-generator/internal/lineup"
)

const keyPrefix = "xigen:batch"

// GenerationCache stores finished batches of seeded, and therefore
// deterministic, generation requests.
type GenerationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewClient connects to redisURL and verifies the connection.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewGenerationCache(client *redis.Client, ttl time.Duration, logger *logrus.Entry) *GenerationCache {
	return &GenerationCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Key hashes a request into a cache key. Requests that encode to the same
// JSON share a key.
func Key(request interface{}) (string, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key: %w", err)
	}
	return fmt.Sprintf("%s:%x", keyPrefix, md5.Sum(data)), nil
}

// Get returns the cached batch for key. A miss is not an error.
func (c *GenerationCache) Get(ctx context.Context, key string) (*lineup.Batch, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache: %w", err)
	}

	var batch lineup.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Dropping unreadable cache entry")
		c.client.Del(ctx, key)
		return nil, false, nil
	}
	return &batch, true, nil
}

func (c *GenerationCache) Set(ctx context.Context, key string, batch *lineup.Batch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (c *GenerationCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
