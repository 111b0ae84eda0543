package session

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/common"
)

func TestGenerateID(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	s := Session{
		ID:          "abc",
		CustomerID:  "c-1",
		Email:       "siti@example.com",
		DisplayName: "Siti",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, s))

	assert.True(t, mr.Exists("session:abc"))
	ttl := mr.TTL("session:abc")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.CustomerID)
	assert.Equal(t, "Siti", got.DisplayName)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Create(ctx, Session{ID: "x", CustomerID: "c", ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRedisStore_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	assert.Error(t, store.Create(ctx, Session{ID: "", CustomerID: "c", ExpiresAt: time.Now().Add(time.Hour)}))
	assert.Error(t, store.Create(ctx, Session{ID: "x", CustomerID: "c", ExpiresAt: time.Now().Add(-time.Second)}))
}

func TestRedisStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Get(ctx, "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Create(ctx, Session{ID: "m", CustomerID: "c-9", ExpiresAt: now.Add(time.Hour)}))

	got, err := store.Get(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, "c-9", got.CustomerID)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "m")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, store.Delete(ctx, "missing"))
}
