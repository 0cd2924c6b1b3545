package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustvault/internal/vault/models"
)

func TestGetServesDefaultSeed(t *testing.T) {
	snapshot, err := New().Get(context.Background())
	require.NoError(t, err)

	assert.Len(t, snapshot.CryptoAssets, 3)
	assert.Equal(t, "Bitcoin", snapshot.CryptoAssets[0].Name)
	assert.Len(t, snapshot.Passwords, 2)
	assert.Len(t, snapshot.Documents, 2)
}

func TestPutReplacesSnapshot(t *testing.T) {
	store := New()
	err := store.Put(context.Background(), &models.Snapshot{
		Documents: []models.Document{{Name: "Will", Type: "PDF", Size: "0.3 MB"}},
	})
	require.NoError(t, err)

	snapshot, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.CryptoAssets)
	require.Len(t, snapshot.Documents, 1)
	assert.Equal(t, "Will", snapshot.Documents[0].Name)
}
