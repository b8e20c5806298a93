package ingest

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"
)

// ErrCacheMiss is returned by Cache.Get when no table is stored under a key.
var ErrCacheMiss = errors.New("ingest: cache miss")

// Cache memoizes parsed static tables for the life of the process. Entries
// never expire; they leave only through Invalidate or Purge.
type Cache interface {
	Get(ctx context.Context, key string) (*Table, error)
	Set(ctx context.Context, key string, table *Table) error
	Invalidate(ctx context.Context, key string) error
	Purge(ctx context.Context) error
}

// Pinger is implemented by caches backed by a remote store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SourceKey identifies one snapshot by its path and exact content.
func SourceKey(path string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(content)
	return fmt.Sprintf("%x", h.Sum(nil)[:16])
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{tables: make(map[string]*Table)}
}

// Get returns the table stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) (*Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return t, nil
}

// Set stores table under key, replacing any previous entry.
func (c *MemoryCache) Set(_ context.Context, key string, table *Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables[key] = table
	return nil
}

// Invalidate removes key. Removing an absent key is not an error.
func (c *MemoryCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.tables, key)
	return nil
}

// Purge removes every entry.
func (c *MemoryCache) Purge(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables = make(map[string]*Table)
	return nil
}

// Len returns the number of stored tables.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.tables)
}
