//go:build integration
// +build integration

package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

func setupTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	cache, err := NewRedisCacheFromURL(uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	require.NoError(t, cache.Ping(ctx))
	return cache
}

func TestRedisCache_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	cache := setupTestRedis(t)

	_, err := cache.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	published := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	minutes := 3.75
	tags := "#music"
	table := &Table{
		Records: []models.VideoRecord{{
			Title:           "Song A",
			PubDate:         &published,
			DurationMinutes: &minutes,
			ViewCount:       1234567,
			Hashtag:         &tags,
			Category:        "Music",
		}},
		Stats: models.LoadStats{Source: models.SourceStatic, RowsRead: 1, RowsKept: 1},
	}

	require.NoError(t, cache.Set(ctx, "k1", table))
	require.NoError(t, cache.Set(ctx, "k2", &Table{}))

	got, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "Song A", got.Records[0].Title)
	assert.Equal(t, int64(1234567), got.Records[0].ViewCount)
	assert.True(t, published.Equal(*got.Records[0].PubDate))
	assert.Nil(t, got.Records[0].DateRef)
	assert.Equal(t, 1, got.Stats.RowsKept)

	require.NoError(t, cache.Invalidate(ctx, "k1"))
	_, err = cache.Get(ctx, "k1")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	require.NoError(t, cache.Purge(ctx))
	_, err = cache.Get(ctx, "k2")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestRedisCache_BacksStaticLoader(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	path := writeSnapshot(t, snapshotCSV)
	loader := NewStaticLoader(setupTestRedis(t))

	first, err := loader.Load(ctx, path)
	require.NoError(t, err)
	second, err := loader.Load(ctx, path)
	require.NoError(t, err)

	assert.False(t, first.Stats.CacheHit)
	assert.True(t, second.Stats.CacheHit)
	assert.Len(t, second.Records, len(first.Records))
}
