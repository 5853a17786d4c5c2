package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soteria-labs/soteria/pkg/engine"
)

const cacheKeyPrefix = "soteria:verdict:"

// VerdictCache memoizes analysis results in Redis. The key covers both the
// raw text and the effective threshold, so two users with different
// sensitivity settings never share a verdict. Cache failures are reported
// but never block analysis; callers fall through to the engine.
type VerdictCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVerdictCache connects to Redis and verifies the connection.
func NewVerdictCache(addr string, ttl time.Duration) (*VerdictCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &VerdictCache{client: client, ttl: ttl}, nil
}

// Key derives the cache key for a text under an effective threshold.
func Key(text string, threshold float64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%.4f", text, threshold)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached result, or (nil, nil) on a miss.
func (c *VerdictCache) Get(ctx context.Context, key string) (*engine.AnalysisResult, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var res engine.AnalysisResult
	if err := json.Unmarshal(raw, &res); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten
		return nil, nil
	}
	return &res, nil
}

// Put stores a result under the key with the cache TTL.
func (c *VerdictCache) Put(ctx context.Context, key string, res *engine.AnalysisResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (c *VerdictCache) Close() error {
	return c.client.Close()
}
