package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"auth-session-svc/src/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token
	require.NotEmpty(t, token)

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "admin", record.Username)
	assert.Equal(t, models.ThemeLight, record.Preferences.Theme)
	assert.WithinDuration(t, time.Now(), record.LastLogin, time.Second)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), record.ExpiresAt, time.Second)
}

func TestMemoryStoreTokensAreUnique(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		created, err := store.Create(ctx, "admin")
		require.NoError(t, err)
		require.False(t, seen[created.Token], "token reused")
		seen[created.Token] = true
	}
}

func TestMemoryStoreGetUnknownToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	record, err := store.Get(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestMemoryStoreExpiredSessionIsAbsent(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	// Rewind the record past its TTL, as if 24h+1s elapsed.
	store.mu.Lock()
	store.records[token].ExpiresAt = time.Now().Add(-time.Second)
	store.mu.Unlock()

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, record)

	// Lazy eviction removed the record entirely.
	store.mu.Lock()
	_, ok := store.records[token]
	store.mu.Unlock()
	assert.False(t, ok)
}

func TestMemoryStoreSetTheme(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	updated, err := store.SetTheme(ctx, token, models.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, updated.Preferences.Theme)

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, record.Preferences.Theme)
}

func TestMemoryStoreSetThemeInvalidValue(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	_, err = store.SetTheme(ctx, token, "purple")
	assert.ErrorIs(t, err, models.ErrInvalidTheme)

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, record.Preferences.Theme, "theme must be unchanged")
}

func TestMemoryStoreSetThemeUnknownToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.SetTheme(context.Background(), "no-such-token", models.ThemeDark)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestMemoryStoreDestroyIsIdempotentUnderRetry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	require.NoError(t, store.Destroy(ctx, token))

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, record)

	assert.ErrorIs(t, store.Destroy(ctx, token), models.ErrSessionNotFound)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	record, err := store.Get(ctx, token)
	require.NoError(t, err)

	record.Preferences.Theme = models.ThemeDark

	fresh, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, fresh.Preferences.Theme)
}

func TestMemoryStoreConcurrentThemeUpdates(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		theme := models.ThemeLight
		if i%2 == 0 {
			theme = models.ThemeDark
		}
		go func(theme string) {
			defer wg.Done()
			_, err := store.SetTheme(ctx, token, theme)
			assert.NoError(t, err)
		}(theme)
	}
	wg.Wait()

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, models.IsValidTheme(record.Preferences.Theme))
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	live, err := store.Create(ctx, "admin")
	require.NoError(t, err)

	expired, err := store.Create(ctx, "admin")
	require.NoError(t, err)

	store.mu.Lock()
	store.records[expired.Token].ExpiresAt = time.Now().Add(-time.Minute)
	store.mu.Unlock()

	removed := store.sweep()
	assert.Equal(t, 1, removed)

	record, err := store.Get(ctx, live.Token)
	require.NoError(t, err)
	assert.NotNil(t, record)
}
