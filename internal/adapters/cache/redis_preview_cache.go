package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPreviewCache stores assembled envelopes in Redis, keyed by
// journey fingerprint. Entries expire on a short TTL: previews are a
// UI convenience, not a source of truth, and stale entries for edited
// journeys are already avoided by the content-derived key.
type RedisPreviewCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPreviewCache(client *redis.Client, ttl time.Duration) *RedisPreviewCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisPreviewCache{Client: client, TTL: ttl}
}

func (c *RedisPreviewCache) key(fingerprint string) string {
	return "journey:preview:" + fingerprint
}

// Fetch a cached envelope; ok is false on miss.
func (c *RedisPreviewCache) Get(ctx context.Context, fingerprint string) (_ *domain.JourneyEnvelope, _ bool, err error) {
	defer obs.Time(ctx, "preview.cache.get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("preview cache: client is nil")
	}
	if fingerprint == "" {
		return nil, false, errors.New("preview cache: fingerprint must not be empty")
	}

	raw, err := c.Client.Get(ctx, c.key(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("preview cache: get %q: %w", fingerprint, err)
	}

	var env domain.JourneyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("preview cache: decode %q: %w", fingerprint, err)
	}

	return &env, true, nil
}

// Store an envelope under a fingerprint with the configured TTL.
func (c *RedisPreviewCache) Put(ctx context.Context, fingerprint string, envelope *domain.JourneyEnvelope) error {
	if c.Client == nil {
		return errors.New("preview cache: client is nil")
	}
	if fingerprint == "" {
		return errors.New("preview cache: fingerprint must not be empty")
	}
	if envelope == nil {
		return errors.New("preview cache: envelope must not be nil")
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("preview cache: encode %q: %w", fingerprint, err)
	}

	if err := c.Client.Set(ctx, c.key(fingerprint), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("preview cache: set %q: %w", fingerprint, err)
	}

	return nil
}
