package store

import (
	"context"
	"sync"

	"trustvault/internal/vault/models"
)

// InMemoryStore holds the vault snapshot. When nothing has been stored it
// serves the seeded default snapshot, mirroring the reference behavior of a
// fresh installation.
type InMemoryStore struct {
	mu       sync.RWMutex
	snapshot *models.Snapshot
}

// New constructs a vault store serving the default snapshot until Put is
// called.
func New() *InMemoryStore {
	return &InMemoryStore{}
}

// Get returns the stored snapshot, or the default seed when none exists.
func (s *InMemoryStore) Get(_ context.Context) (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return defaultSnapshot(), nil
	}
	copied := *s.snapshot
	return &copied, nil
}

// Put replaces the stored snapshot.
func (s *InMemoryStore) Put(_ context.Context, snapshot *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *snapshot
	s.snapshot = &copied
	return nil
}

func defaultSnapshot() *models.Snapshot {
	return &models.Snapshot{
		CryptoAssets: []models.CryptoAsset{
			{Name: "Bitcoin", Amount: "0.025", Value: "$612.50"},
			{Name: "Ethereum", Amount: "0.5", Value: "$925.00"},
			{Name: "Solana", Amount: "5", Value: "$475.00"},
		},
		Passwords: []models.SavedPassword{
			{Site: "Example Bank", Username: "user123", Password: "************"},
			{Site: "Email Provider", Username: "user@example.com", Password: "************"},
		},
		Documents: []models.Document{
			{Name: "Insurance Policy", Type: "PDF", Size: "2.4 MB"},
			{Name: "Property Deed", Type: "PDF", Size: "1.8 MB"},
		},
	}
}
