//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"trustvault/internal/accesscode/models"
	"trustvault/internal/accesscode/store"
	"trustvault/pkg/platform/sentinel"
	"trustvault/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeCode(issued time.Time, ttl time.Duration) *models.AccessCode {
	return &models.AccessCode{
		Value:     "1234567890123456",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(ttl),
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	issued := time.Now()
	code := makeCode(issued, time.Minute)
	s.Require().NoError(s.store.Put(ctx, code))

	found, err := s.store.Current(ctx, issued.Add(time.Second))
	s.Require().NoError(err)
	s.Equal(code.Value, found.Value)
	s.WithinDuration(code.ExpiresAt, found.ExpiresAt, time.Millisecond)
}

func (s *RedisStoreSuite) TestCurrentWhenAbsent() {
	_, err := s.store.Current(context.Background(), time.Now())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestLazyExpiryBeatsRedisTTL() {
	ctx := context.Background()
	issued := time.Now()
	// Long Redis TTL, but the injected "now" is already past ExpiresAt:
	// the authoritative check must purge and report expiry.
	code := makeCode(issued, time.Minute)
	s.Require().NoError(s.store.Put(ctx, code))

	_, err := s.store.Current(ctx, issued.Add(2*time.Minute))
	s.Require().ErrorIs(err, sentinel.ErrExpired)

	_, err = s.store.Current(ctx, issued)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestRedisTTLPurgesKey() {
	ctx := context.Background()
	issued := time.Now()
	s.Require().NoError(s.store.Put(ctx, makeCode(issued, 100*time.Millisecond)))

	time.Sleep(250 * time.Millisecond)

	_, err := s.store.Current(ctx, time.Now())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestPutReplacesUnconditionally() {
	ctx := context.Background()
	issued := time.Now()
	first := makeCode(issued, time.Minute)
	s.Require().NoError(s.store.Put(ctx, first))

	second := makeCode(issued, time.Minute)
	second.Value = "6543210987654321"
	s.Require().NoError(s.store.Put(ctx, second))

	found, err := s.store.Current(ctx, issued.Add(time.Second))
	s.Require().NoError(err)
	s.Equal(second.Value, found.Value)
}

func (s *RedisStoreSuite) TestDeleteIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.store.Delete(ctx))
	s.Require().NoError(s.store.Put(ctx, makeCode(time.Now(), time.Minute)))
	s.Require().NoError(s.store.Delete(ctx))

	_, err := s.store.Current(ctx, time.Now())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
