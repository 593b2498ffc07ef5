package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "jobsearch:"

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Redis is a Store backed by a Redis instance, letting multiple client
// processes share one response cache. Entries are JSON-encoded and expire
// through Redis TTLs.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an established Redis client as a Store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry behaves like a miss; the next Set replaces it.
		return Entry{}, false
	}

	return entry, true
}

func (r *Redis) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_ = r.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) {
	_ = r.client.Del(ctx, redisKeyPrefix+key).Err()
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

var _ Store = (*Redis)(nil)
