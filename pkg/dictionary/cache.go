package dictionary

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize matches the number of recent words kept in memory.
const DefaultCacheSize = 512

// Cached wraps a Lookuper with an in-memory LRU of successful results.
// Concurrent lookups of the same word share one upstream call.
// Cached results are shared between callers and must be treated as read-only.
type Cached struct {
	next  Lookuper
	cache *lru.Cache[string, Result]
	group singleflight.Group
}

// NewCached creates a cache holding up to size results. A size of zero or less
// disables caching but keeps request coalescing.
func NewCached(next Lookuper, size int) (*Cached, error) {
	c := &Cached{next: next}
	if size > 0 {
		cache, err := lru.New[string, Result](size)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Lookup returns a cached result when present, otherwise asks the wrapped Lookuper.
// Failures are never cached.
func (c *Cached) Lookup(ctx context.Context, word string) (Result, error) {
	key := NormalizeWord(word)
	if key == "" {
		return Result{}, ErrEmptyWord
	}
	if c.cache != nil {
		if r, ok := c.cache.Get(key); ok {
			return r, nil
		}
	}

	// The shared call outlives any one caller: a caller that gives up must not
	// fail the others waiting on the same word. The client's timeout and retry
	// budget still bound it.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		r, err := c.next.Lookup(shared, key)
		if err != nil {
			return Result{}, err
		}
		if c.cache != nil {
			c.cache.Add(key, r)
		}
		return r, nil
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Result{}, res.Err
		}
		return res.Val.(Result), nil
	}
}

// Len reports the number of cached results.
func (c *Cached) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
