package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) storage.HitCache {
	t.Helper()
	runs, cache, backend, err := NewMemoryStores(ttl)
	require.NoError(t, err)
	t.Cleanup(func() {
		cache.Close()
		runs.Close()
		backend.Close()
	})
	return cache
}

func TestHitCache_PutGet(t *testing.T) {
	cache := newTestCache(t, time.Hour)
	ctx := context.Background()
	hits := []core.SearchHit{
		{Title: "Lease", URL: "https://law.example/lease", Source: core.SourceLegalDatabase, QueryUsed: "lease"},
	}

	require.NoError(t, cache.PutHits(ctx, "lease|us-en|5", hits))

	got, err := cache.GetHits(ctx, "lease|us-en|5")
	require.NoError(t, err)
	assert.Equal(t, hits, got)
}

func TestHitCache_Miss(t *testing.T) {
	cache := newTestCache(t, time.Hour)

	_, err := cache.GetHits(context.Background(), "absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHitCache_EmptyResultIsCached(t *testing.T) {
	cache := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.PutHits(ctx, "k", nil))

	got, err := cache.GetHits(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHitCache_Overwrite(t *testing.T) {
	cache := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cache.PutHits(ctx, "k", []core.SearchHit{{URL: "https://a"}}))
	require.NoError(t, cache.PutHits(ctx, "k", []core.SearchHit{{URL: "https://b"}}))

	got, err := cache.GetHits(ctx, "k")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://b", got[0].URL)
}

func TestHitCache_Expiry(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a TTL to elapse")
	}
	cache := newTestCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, cache.PutHits(ctx, "k", []core.SearchHit{{URL: "https://a"}}))
	time.Sleep(2100 * time.Millisecond)

	_, err := cache.GetHits(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
