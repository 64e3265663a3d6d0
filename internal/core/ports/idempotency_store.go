package ports

import "context"

// IdempotencyStore remembers which application a client Idempotency-Key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (applicationID string, found bool, err error)
	Remember(ctx context.Context, key, applicationID string) error
}
