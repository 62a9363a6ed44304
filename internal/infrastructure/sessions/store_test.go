package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStore_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	_, err := store.Tokens(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn, "fresh session has no tokens")

	pair := domain.TokenPair{AccessToken: "at", RefreshToken: "rt"}
	require.NoError(t, store.SaveTokens(ctx, "sess-1", pair))

	got, err := store.Tokens(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, pair, got)

	require.NoError(t, store.ClearTokens(ctx, "sess-1"))
	_, err = store.Tokens(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)

	// Clearing an already-clear session is fine.
	require.NoError(t, store.ClearTokens(ctx, "sess-1"))
}

func TestRedisStore_SaveTokensResetsTimeout(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	require.NoError(t, store.SaveTokens(ctx, "sess-1", domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, store.MarkTimeout(ctx, "sess-1"))

	// A fresh login overwrites the stale timeout marker.
	require.NoError(t, store.SaveTokens(ctx, "sess-1", domain.TokenPair{AccessToken: "a2", RefreshToken: "r2"}))
	timedOut, err := store.ConsumeTimeout(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, timedOut)
}

func TestRedisStore_EnsureCSRF(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	token, err := store.EnsureCSRF(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, token, 64, "32 random bytes hex-encoded")

	// Stable across calls for the same session.
	again, err := store.EnsureCSRF(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, token, again)

	other, err := store.EnsureCSRF(ctx, "sess-2")
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	stored, err := store.CSRF(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestRedisStore_SignupIntent(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	intent, err := store.TakeSignupIntent(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, intent)

	require.NoError(t, store.SetSignupIntent(ctx, "sess-1", true))

	intent, err = store.TakeSignupIntent(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, intent)

	// Take clears the flag.
	intent, err = store.TakeSignupIntent(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, intent)
}

func TestRedisStore_TimeoutMarker(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	require.NoError(t, store.SaveTokens(ctx, "sess-1", domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	_, err := store.EnsureCSRF(ctx, "sess-1")
	require.NoError(t, err)

	require.NoError(t, store.MarkTimeout(ctx, "sess-1"))

	_, err = store.Tokens(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn, "timeout drops the tokens")
	csrf, err := store.CSRF(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, csrf, "timeout drops the csrf token")

	timedOut, err := store.ConsumeTimeout(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, timedOut)

	// Consume clears the marker.
	timedOut, err = store.ConsumeTimeout(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, timedOut)
}

func TestRedisStore_RecordTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t)

	require.NoError(t, store.SaveTokens(ctx, "sess-1", domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	mr.FastForward(2 * time.Hour)

	_, err := store.Tokens(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn, "expired record reads as a fresh session")
}
