// Package remotecache keeps a time-windowed local copy of workspace documents.
//
// Entries are keyed by workspace and path. A read refreshes an entry's
// recency; a periodic sweep drops entries that have not been read within the
// eviction window. Concurrent misses for the same key share one store fetch.
package remotecache

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/sassline/internal/retry"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Lookup results reported to ports.Metrics.
const (
	LookupHit    = "hit"
	LookupMiss   = "miss"
	LookupShared = "shared"
)

var _ ports.ContentCache = (*Cache)(nil)

// Cache is the remote content cache.
type Cache struct {
	store   ports.Store
	metrics ports.Metrics
	logger  ports.Logger
	clock   clockwork.Clock
	policy  retry.Policy

	window        time.Duration
	sweepInterval time.Duration
	storeTimeout  time.Duration

	mu      sync.Mutex
	entries map[domain.CacheKey]*domain.CacheEntry

	inflight singleflight.Group

	sweepMu   sync.Mutex
	scheduler gocron.Scheduler
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used to stamp and expire entries.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

// WithEvictionWindow sets how long an unread entry survives.
func WithEvictionWindow(d time.Duration) Option {
	return func(c *Cache) { c.window = d }
}

// WithSweepInterval sets how often expired entries are removed.
func WithSweepInterval(d time.Duration) Option {
	return func(c *Cache) { c.sweepInterval = d }
}

// WithStoreTimeout bounds each fetch from the store.
func WithStoreTimeout(d time.Duration) Option {
	return func(c *Cache) { c.storeTimeout = d }
}

// WithRetryPolicy sets the retry policy for store fetches.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Cache) { c.policy = p }
}

// New creates an empty cache in front of store.
func New(store ports.Store, metrics ports.Metrics, logger ports.Logger, opts ...Option) *Cache {
	c := &Cache{
		store:         store,
		metrics:       metrics,
		logger:        logger,
		clock:         clockwork.NewRealClock(),
		policy:        retry.Policy{Attempts: 1},
		window:        domain.DefaultEvictionWindow,
		sweepInterval: domain.DefaultSweepInterval,
		storeTimeout:  domain.DefaultStoreTimeout,
		entries:       make(map[domain.CacheKey]*domain.CacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrFetch returns the cached content for the document, fetching it from
// the store on a miss. A hit refreshes the entry's recency.
//
// The returned slice is shared with the cache and must not be modified.
func (c *Cache) GetOrFetch(ctx context.Context, workspaceID, path string) ([]byte, error) {
	key := domain.CacheKey{WorkspaceID: workspaceID, Path: path}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.LastUsedAt = c.clock.Now()
		content := e.Content
		c.mu.Unlock()
		c.metrics.CacheLookup(LookupHit)
		return content, nil
	}
	c.mu.Unlock()

	ch := c.inflight.DoChan(key.String(), func() (any, error) {
		return c.fetch(ctx, key)
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.metrics.CacheLookup(LookupShared)
		} else {
			c.metrics.CacheLookup(LookupMiss)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		content, _ := res.Val.([]byte)
		return content, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetch loads a document from the store and inserts it. It runs detached from
// the caller's cancellation since other callers may be waiting on it.
func (c *Cache) fetch(ctx context.Context, key domain.CacheKey) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.storeTimeout)
	defer cancel()

	start := c.clock.Now()
	content, err := retry.DoWithData(ctx, c.policy, func() ([]byte, error) {
		payload, err := c.store.Get(ctx, key.WorkspaceID, key.Path, ports.GetOptions{
			ForceRemote:  true,
			WantRevision: true,
		})
		if err != nil {
			return nil, err
		}
		return Drain(payload)
	})
	c.metrics.ObserveFetch(c.clock.Since(start), err == nil)

	if err != nil {
		err = zerr.Wrap(err, domain.ErrStoreFetchFailed.Error())
		return nil, zerr.With(err, "key", key.String())
	}

	c.Put(key.WorkspaceID, key.Path, content)
	c.logger.Debug("cached document", "key", key.String(), "bytes", len(content))

	return content, nil
}

// Drain returns the full content of a payload, concatenating chunks in order.
func Drain(p *ports.Payload) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	if p.Chunks == nil {
		return p.Content, nil
	}

	var buf bytes.Buffer
	for chunk, err := range p.Chunks {
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read chunk")
		}
		buf.Write(chunk)
	}
	return buf.Bytes(), nil
}

// Peek returns a copy of the entry without refreshing its recency.
func (c *Cache) Peek(workspaceID, path string) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[domain.CacheKey{WorkspaceID: workspaceID, Path: path}]
	if !ok {
		return domain.CacheEntry{}, false
	}
	return *e, true
}

// Put inserts content stamped with the current time, replacing any entry
// with the same key.
func (c *Cache) Put(workspaceID, path string, content []byte) {
	key := domain.CacheKey{WorkspaceID: workspaceID, Path: path}

	c.mu.Lock()
	c.entries[key] = &domain.CacheEntry{
		WorkspaceID: workspaceID,
		Path:        path,
		Content:     content,
		Digest:      xxhash.Sum64(content),
		LastUsedAt:  c.clock.Now(),
	}
	n := len(c.entries)
	c.mu.Unlock()

	c.metrics.CacheSize(n)
}

// Replace swaps the content of an existing entry without touching its
// recency. It reports false when there is no entry for the key.
func (c *Cache) Replace(workspaceID, path string, content []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[domain.CacheKey{WorkspaceID: workspaceID, Path: path}]
	if !ok {
		return false
	}
	e.Content = content
	e.Digest = xxhash.Sum64(content)
	return true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// EvictExpired removes every entry that has not been read within the
// eviction window and returns how many were removed.
func (c *Cache) EvictExpired() int {
	now := c.clock.Now()

	c.mu.Lock()
	removed := 0
	for key, e := range c.entries {
		if e.Expired(now, c.window) {
			delete(c.entries, key)
			removed++
		}
	}
	n := len(c.entries)
	c.mu.Unlock()

	if removed > 0 {
		c.metrics.CacheEvicted(removed)
		c.metrics.CacheSize(n)
		c.logger.Debug("evicted cache entries", "removed", removed, "remaining", n)
	}
	return removed
}
