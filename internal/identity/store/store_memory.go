package store

import (
	"context"
	"fmt"
	"sync"

	"trustvault/internal/identity/models"
	"trustvault/pkg/platform/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when no identity is registered
// - Return ErrConflict when Create finds an existing record
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures

// InMemoryStore holds the single identity record in memory for tests/dev.
// The singleton invariant is enforced here: Create refuses to overwrite.
type InMemoryStore struct {
	mu       sync.RWMutex
	identity *models.Identity
}

// New constructs an empty in-memory identity store.
func New() *InMemoryStore {
	return &InMemoryStore{}
}

// Create persists the identity. Exactly one record may exist; a second
// Create fails with ErrConflict rather than overwriting.
func (s *InMemoryStore) Create(_ context.Context, identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity != nil {
		return fmt.Errorf("identity already registered: %w", sentinel.ErrConflict)
	}
	copied := *identity
	s.identity = &copied
	return nil
}

// Get returns the current identity record.
func (s *InMemoryStore) Get(_ context.Context) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil, fmt.Errorf("identity not registered: %w", sentinel.ErrNotFound)
	}
	copied := *s.identity
	return &copied, nil
}

// Delete removes the record. Deleting when absent is a no-op.
func (s *InMemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	return nil
}
