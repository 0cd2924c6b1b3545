// Package service owns the access code lifecycle: issuance, expiry tracking,
// validation, and invalidation. The lazy expiry check here is the single
// source of truth; any UI countdown polling RemainingSeconds is advisory.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"trustvault/internal/accesscode/models"
	"trustvault/pkg/platform/sentinel"
	"trustvault/pkg/requestcontext"
)

// Store holds the single live access code. Implementations must serialize
// the purge-on-expiry inside Current against concurrent Put calls so a stale
// purge can never discard a freshly issued code.
type Store interface {
	// Put stores the code, unconditionally replacing any previous one.
	Put(ctx context.Context, code *models.AccessCode) error
	// Current returns the live code as of now. When the stored code has
	// expired it is purged and ErrExpired is returned; subsequent calls see
	// ErrNotFound.
	Current(ctx context.Context, now time.Time) (*models.AccessCode, error)
	// Delete removes any stored code. Deleting when absent is a no-op.
	Delete(ctx context.Context) error
}

// Service issues and validates access codes. The clock comes from the
// request context so expiry logic is deterministic under test.
type Service struct {
	codes  Store
	ttl    time.Duration
	length int
	logger *slog.Logger
}

// New constructs the access code service. ttl and length come from config;
// the reference behavior is 16 digits valid for 30 seconds.
func New(codes Store, ttl time.Duration, length int, logger *slog.Logger) *Service {
	return &Service{
		codes:  codes,
		ttl:    ttl,
		length: length,
		logger: logger,
	}
}

// Issue mints a fresh code and stores it, replacing any previous code even
// if that one had time left. Last-issued-wins; there is never more than one
// verifiable code.
func (s *Service) Issue(ctx context.Context) (*models.AccessCode, error) {
	now := requestcontext.Now(ctx)

	value, err := randomDigits(s.length)
	if err != nil {
		return nil, fmt.Errorf("generate access code: %w", err)
	}

	code := &models.AccessCode{
		Value:     value,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.codes.Put(ctx, code); err != nil {
		return nil, fmt.Errorf("store access code: %w", err)
	}

	s.logger.InfoContext(ctx, "access code issued",
		"request_id", requestcontext.RequestID(ctx),
		"expires_at", code.ExpiresAt,
	)
	return code, nil
}

// Validate reports whether presented equals the live code. Validation is
// non-consuming: the same correct code keeps validating until expiry. An
// expired code is purged as a side effect and treated as absent.
func (s *Service) Validate(ctx context.Context, presented string) (bool, error) {
	now := requestcontext.Now(ctx)

	code, err := s.codes.Current(ctx, now)
	if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load access code: %w", err)
	}

	return presented == code.Value, nil
}

// RemainingSeconds returns whole seconds until the live code expires, or 0
// when no live code exists.
func (s *Service) RemainingSeconds(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)

	code, err := s.codes.Current(ctx, now)
	if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load access code: %w", err)
	}

	return code.RemainingSeconds(now), nil
}

// Invalidate discards any outstanding code immediately. Identity deletion
// cascades through here.
func (s *Service) Invalidate(ctx context.Context) error {
	if err := s.codes.Delete(ctx); err != nil {
		return fmt.Errorf("invalidate access code: %w", err)
	}
	return nil
}

// randomDigits draws length independent uniform decimal digits. rand.Int is
// used per digit so every digit is exactly uniform; leading zeros are
// permitted.
func randomDigits(length int) (string, error) {
	ten := big.NewInt(10)
	buf := make([]byte, length)
	for i := range buf {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf[i] = '0' + byte(d.Int64())
	}
	return string(buf), nil
}
