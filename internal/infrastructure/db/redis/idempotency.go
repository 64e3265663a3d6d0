package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client Idempotency-Key values to application ids.
// Key format: idempotency:apply:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore wraps client; keys expire after ttl (24h when ttl <= 0).
func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the application id recorded for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records applicationID for key. The first writer wins.
func (s *IdempotencyStore) Remember(ctx context.Context, key, applicationID string) error {
	if err := s.client.SetNX(ctx, s.key(key), applicationID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idempotency:apply:" + key
}
