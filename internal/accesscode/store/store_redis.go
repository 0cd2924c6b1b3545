package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trustvault/internal/accesscode/models"
	"trustvault/pkg/platform/sentinel"
)

// Redis key for the single live access code.
const codeKey = "trustvault:accesscode"

// RedisStore keeps the live access code in Redis. The key TTL mirrors the
// code's own expiry, so Redis usually purges before the lazy check fires;
// the explicit expiry check in Current stays authoritative either way.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed access code store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put stores the code under its TTL, unconditionally replacing any previous
// one. SET with PX is atomic, so replace-and-reset-expiry is one operation.
func (s *RedisStore) Put(ctx context.Context, code *models.AccessCode) error {
	payload, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("marshal access code: %w", err)
	}
	ttl := code.ExpiresAt.Sub(code.IssuedAt)
	if ttl <= 0 {
		// An already-expired code is logically absent; never store it.
		return s.Delete(ctx)
	}
	if err := s.client.Set(ctx, codeKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store access code: %w", err)
	}
	return nil
}

// Current returns the live code as of now. Redis TTL expiry surfaces as
// ErrNotFound; a code Redis still holds but that now says is expired is
// deleted and reported as ErrExpired.
func (s *RedisStore) Current(ctx context.Context, now time.Time) (*models.AccessCode, error) {
	payload, err := s.client.Get(ctx, codeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("access code not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load access code: %w", err)
	}

	var code models.AccessCode
	if err := json.Unmarshal(payload, &code); err != nil {
		return nil, fmt.Errorf("unmarshal access code: %w", err)
	}

	if code.ExpiredAt(now) {
		if err := s.client.Del(ctx, codeKey).Err(); err != nil {
			return nil, fmt.Errorf("purge expired access code: %w", err)
		}
		return nil, fmt.Errorf("access code expired: %w", sentinel.ErrExpired)
	}
	return &code, nil
}

// Delete removes any stored code. Deleting when absent is a no-op.
func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, codeKey).Err(); err != nil {
		return fmt.Errorf("delete access code: %w", err)
	}
	return nil
}
