package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/jrsteele09/appeals-client/sessions/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStoreTest(t *testing.T, options ...redisstore.StoreOption) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return redisstore.New(rdb, "appeals:session", options...), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStoreTest(t)
	state := sessions.NewState(store)

	require.NoError(t, state.SaveTokens(ctx, "a1", "r1"))
	require.Equal(t, "a1", mr.HGet("appeals:session", sessions.KeyAccessToken))

	refresh, err := state.RefreshToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "r1", refresh)

	_, ok, err := store.Get(ctx, sessions.KeyUserRole)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStore_Clear(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStoreTest(t)
	state := sessions.NewState(store)

	require.NoError(t, state.SaveTokens(ctx, "a1", "r1"))
	require.NoError(t, state.SaveUser(ctx, sessions.User{ID: "u", Name: "n"}))
	require.NoError(t, state.Clear(ctx))
	require.False(t, mr.Exists("appeals:session"))
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStoreTest(t, redisstore.WithTTL(time.Hour))

	require.NoError(t, store.Set(ctx, sessions.KeyAccessToken, "a1"))
	require.Equal(t, time.Hour, mr.TTL("appeals:session"))

	mr.FastForward(2 * time.Hour)
	_, ok, err := store.Get(ctx, sessions.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStore_ConnectionErrorIsNotAMiss(t *testing.T) {
	store, mr := newRedisStoreTest(t)
	mr.Close()

	_, ok, err := store.Get(context.Background(), sessions.KeyAccessToken)
	require.Error(t, err)
	require.False(t, ok)
}
