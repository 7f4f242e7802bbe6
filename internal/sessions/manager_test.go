package sessions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aipo-io/cli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() models.PersistedSession {
	token := "test-session-token"
	return models.PersistedSession{
		User: &models.User{
			ID:               "42",
			Email:            "a@b.com",
			Name:             "Ada Lovelace",
			SubscriptionTier: models.SubscriptionTierPro,
		},
		Token:           &token,
		IsAuthenticated: true,
	}
}

func TestFileStorage_LoadMissingFile(t *testing.T) {
	storage := NewFileStorage(t.TempDir())

	state, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, state.User)
	assert.Nil(t, state.Token)
	assert.False(t, state.IsAuthenticated)
}

func TestFileStorage_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "aipo")
	storage := NewFileStorage(dir)

	require.NoError(t, storage.Save(testSession()))

	info, err := os.Stat(storage.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// A fresh instance over the same directory sees the same state
	loaded, err := NewFileStorage(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, testSession(), loaded)
}

func TestFileStorage_WritesEnvelope(t *testing.T) {
	storage := NewFileStorage(t.TempDir())
	require.NoError(t, storage.Save(testSession()))

	data, err := os.ReadFile(storage.Path())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"state": {
			"user": {
				"id": "42",
				"email": "a@b.com",
				"name": "Ada Lovelace",
				"subscription_tier": "pro"
			},
			"token": "test-session-token",
			"isAuthenticated": true
		},
		"version": 0
	}`, string(data))
}

func TestFileStorage_OverwriteShorterState(t *testing.T) {
	storage := NewFileStorage(t.TempDir())
	require.NoError(t, storage.Save(testSession()))
	require.NoError(t, storage.Save(models.PersistedSession{}))

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, models.PersistedSession{}, loaded)
}

func TestFileStorage_Clear(t *testing.T) {
	storage := NewFileStorage(t.TempDir())
	require.NoError(t, storage.Save(testSession()))

	require.NoError(t, storage.Clear())
	_, err := os.Stat(storage.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	require.NoError(t, storage.Clear())
}

func TestFileStorage_CorruptFile(t *testing.T) {
	storage := NewFileStorage(t.TempDir())
	require.NoError(t, os.WriteFile(storage.Path(), []byte("{not json"), 0600))

	_, err := storage.Load()
	assert.ErrorIs(t, err, ErrCorruptSession)
}

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()

	state, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, models.PersistedSession{}, state)

	require.NoError(t, storage.Save(testSession()))
	state, err = storage.Load()
	require.NoError(t, err)
	assert.Equal(t, testSession(), state)

	storage.SetRaw([]byte("garbage"))
	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrCorruptSession)

	require.NoError(t, storage.Clear())
	state, err = storage.Load()
	require.NoError(t, err)
	assert.Equal(t, models.PersistedSession{}, state)
}

func TestFileStorage_Watch(t *testing.T) {
	storage := NewFileStorage(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	require.NoError(t, storage.Watch(ctx, func() {
		changed <- struct{}{}
	}))

	// Another process writing the session
	other := NewFileStorage(filepath.Dir(storage.Path()))
	require.NoError(t, other.Save(testSession()))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}
