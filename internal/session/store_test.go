package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewStoreWithClient(rdb), mr
}

func TestStore_CreateAndLookup(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "jti-1", "user-1", time.Hour))

	userID, err := store.UserID(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestStore_UnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	userID, err := store.UserID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestStore_DeleteKillsSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "jti-1", "user-1", time.Hour))
	require.NoError(t, store.Delete(ctx, "jti-1"))

	userID, err := store.UserID(ctx, "jti-1")
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestStore_Expiration(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "jti-1", "user-1", time.Minute))

	mr.FastForward(2 * time.Minute)

	userID, err := store.UserID(ctx, "jti-1")
	require.NoError(t, err)
	assert.Empty(t, userID, "sessão expirada equivale a inexistente")
}

func TestStore_ZeroTTLFallsBackToDefault(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "jti-1", "user-1", 0))

	ttl := mr.TTL("session:jti-1")
	assert.Equal(t, DefaultTTL, ttl)
}
