package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "a", []byte(`{"x":1}`)))
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"x":1}`), got)

	require.NoError(t, store.Set(ctx, "a", []byte(`{"x":2}`)))
	got, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"x":2}`), got)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	original := []byte("payload")
	require.NoError(t, store.Set(ctx, "a", original))
	original[0] = 'X'

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)

	got[0] = 'Y'
	again, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), again)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisWithClient(client, "contaflow")

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "ledger:journal", []byte(`[]`)))
	got, err := store.Get(ctx, "ledger:journal")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), got)

	// Keys are namespaced under the prefix.
	require.True(t, mr.Exists("contaflow:ledger:journal"))
}

func TestRedisStoreWithoutPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisWithClient(client, "")
	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.True(t, mr.Exists("k"))
}
