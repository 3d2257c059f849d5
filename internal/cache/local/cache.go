// Package local is an in-process port.AggregateCache backed by go-cache.
package local

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"darf/internal/port"
)

// Cache keeps aggregate results in process memory. gen is the version handed
// out by Get; Set under an older gen is dropped.
type Cache struct {
	mu  sync.RWMutex
	gen int64
	c   *gocache.Cache
}

var _ port.AggregateCache = (*Cache)(nil)

// New creates a Cache whose entries expire after defaultTTL unless Set says otherwise.
func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &Cache{c: gocache.New(defaultTTL, 2*time.Minute)}
}

func (l *Cache) Get(_ context.Context, key string) ([]byte, int64, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	v, ok := l.c.Get(key)
	if !ok {
		return nil, l.gen, false, nil
	}
	raw, ok := v.([]byte)
	return raw, l.gen, ok, nil
}

// Set stores value if version is still current. A zero ttl uses the cache default.
func (l *Cache) Set(_ context.Context, key string, version int64, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if version != l.gen {
		return nil
	}
	l.c.Set(key, value, ttl)
	return nil
}

func (l *Cache) Invalidate(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	l.c.Flush()
	return nil
}
