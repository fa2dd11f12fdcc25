package session

import (
	"context"
	"testing"
	"time"

	"auth-session-svc/src/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "session:", ttl), mr
}

func TestRedisStoreCreateAndGet(t *testing.T) {
	store, _ := newTestRedisStore(t, 24*time.Hour)
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
	assert.Equal(t, token, record.Token)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	mr.FastForward(time.Hour + time.Second)

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRedisStoreSetTheme(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
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

func TestRedisStoreSetThemeInvalidValue(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	_, err = store.SetTheme(ctx, token, "purple")
	assert.ErrorIs(t, err, models.ErrInvalidTheme)

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, record.Preferences.Theme)
}

func TestRedisStoreSetThemeUnknownToken(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)

	_, err := store.SetTheme(context.Background(), "no-such-token", models.ThemeDark)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestRedisStoreDestroyIsIdempotentUnderRetry(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin")
	require.NoError(t, err)
	token := created.Token

	require.NoError(t, store.Destroy(ctx, token))
	assert.ErrorIs(t, store.Destroy(ctx, token), models.ErrSessionNotFound)

	record, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, record)
}
