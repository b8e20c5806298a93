package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-tracker/youtube-trend-analyzer-go/internal/models"
)

func TestSourceKey(t *testing.T) {
	a := SourceKey("data.csv", []byte("x"))

	assert.Equal(t, a, SourceKey("data.csv", []byte("x")))
	assert.NotEqual(t, a, SourceKey("other.csv", []byte("x")))
	assert.NotEqual(t, a, SourceKey("data.csv", []byte("y")))
	// the separator keeps path and content from running together
	assert.NotEqual(t, SourceKey("ab", []byte("c")), SourceKey("a", []byte("bc")))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	_, err := cache.Get(ctx, "k1")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	table := &Table{Records: []models.VideoRecord{{Title: "a"}}}
	require.NoError(t, cache.Set(ctx, "k1", table))
	require.NoError(t, cache.Set(ctx, "k2", &Table{}))

	got, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Same(t, table, got)
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Invalidate(ctx, "k1"))
	require.NoError(t, cache.Invalidate(ctx, "absent"))
	_, err = cache.Get(ctx, "k1")
	assert.True(t, errors.Is(err, ErrCacheMiss))
	assert.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Purge(ctx))
	assert.Equal(t, 0, cache.Len())
}

func TestNullPolicy_Apply(t *testing.T) {
	d := 1.0
	records := []models.VideoRecord{
		{Title: "complete", PubDate: &fixedNow, DurationMinutes: &d},
		{Title: "no duration", PubDate: &fixedNow},
		{Title: "no date", DurationMinutes: &d},
	}

	kept, dropped := DropIncomplete.Apply(records)
	assert.Equal(t, 2, dropped)
	require.Len(t, kept, 1)
	assert.Equal(t, "complete", kept[0].Title)

	kept, dropped = KeepIncomplete.Apply(records)
	assert.Equal(t, 0, dropped)
	assert.Len(t, kept, 3)

	assert.Equal(t, "drop_incomplete", DropIncomplete.String())
	assert.Equal(t, "keep_incomplete", KeepIncomplete.String())
}
