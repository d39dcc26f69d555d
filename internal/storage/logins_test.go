package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavgifts/catalogd/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSaveAndListLogins(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	base := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	entries := []model.AuditEntry{
		{Timestamp: base, Email: "a@example.com", Status: model.AuditSuccess, Message: "Login successful", IPAddress: "10.0.0.1"},
		{Timestamp: base.Add(time.Minute), Email: "b@example.com", Status: model.AuditFailed, Message: "Invalid credentials", IPAddress: "10.0.0.2"},
		{Timestamp: base.Add(2 * time.Minute), Email: "c@example.com", Status: model.AuditSuccess, Message: "Login successful", IPAddress: "10.0.0.3"},
	}
	for _, e := range entries {
		require.NoError(t, store.SaveLogin(ctx, e))
	}

	got, err := store.RecentLogins(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, "c@example.com", got[0].Email)
	assert.Equal(t, "b@example.com", got[1].Email)
	assert.Equal(t, "a@example.com", got[2].Email)
	assert.Equal(t, model.AuditFailed, got[1].Status)
	assert.Equal(t, "10.0.0.2", got[1].IPAddress)
	assert.True(t, got[0].Timestamp.Equal(base.Add(2*time.Minute)))
}

func TestRecentLoginsLimit(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveLogin(ctx, model.AuditEntry{
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
			Email:     "user@example.com",
			Status:    model.AuditSuccess,
		}))
	}

	got, err := store.RecentLogins(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRecentLoginsEmpty(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.RecentLogins(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveLoginDefaultsTimestamp(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLogin(ctx, model.AuditEntry{
		Email:  "user@example.com",
		Status: model.AuditError,
	}))

	got, err := store.RecentLogins(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}
