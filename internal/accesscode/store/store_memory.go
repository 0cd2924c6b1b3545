package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trustvault/internal/accesscode/models"
	"trustvault/pkg/platform/sentinel"
)

// InMemoryStore holds the single live access code in memory. All methods
// take the same mutex, so a purge-on-expiry inside Current cannot race with
// a concurrent Put and discard a freshly issued code.
type InMemoryStore struct {
	mu   sync.Mutex
	code *models.AccessCode
}

// New constructs an empty in-memory access code store.
func New() *InMemoryStore {
	return &InMemoryStore{}
}

// Put stores the code, unconditionally replacing any previous one.
func (s *InMemoryStore) Put(_ context.Context, code *models.AccessCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *code
	s.code = &copied
	return nil
}

// Current returns the live code as of now. An expired code is purged under
// the lock and reported as ErrExpired; later calls see ErrNotFound.
func (s *InMemoryStore) Current(_ context.Context, now time.Time) (*models.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.code == nil {
		return nil, fmt.Errorf("access code not found: %w", sentinel.ErrNotFound)
	}
	if s.code.ExpiredAt(now) {
		s.code = nil
		return nil, fmt.Errorf("access code expired: %w", sentinel.ErrExpired)
	}
	copied := *s.code
	return &copied, nil
}

// Delete removes any stored code. Deleting when absent is a no-op.
func (s *InMemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = nil
	return nil
}
