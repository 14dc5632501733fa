package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	pendingMarker         = "pending"
)

// IdempotencyStore remembers which frete each Idempotency-Key created.
// Key format: idem:frete:<shipper_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis
// client. Keys expire after ttl, or defaultIdempotencyTTL when ttl <= 0.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key for a new creation with a pending marker. When the key
// is already held it returns the frete id stored under it, or "" while the
// request that holds it has not finished.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (string, bool, error) {
	k := idempotencyKey(scope, key)
	claimed, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if claimed {
		return "", true, nil
	}

	id, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Released or expired between the two calls.
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if id == pendingMarker {
		return "", false, nil
	}
	return id, false, nil
}

// Complete replaces the pending marker with the id of the created frete.
func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, freteID string) error {
	if err := s.client.Set(ctx, idempotencyKey(scope, key), freteID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops a reservation whose creation failed so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idem:frete:%s:%s", scope, key)
}
