package unprompted

import (
	"context"
	"errors"
	"sync"
	"time"
)

// CachedStore wraps a TemplateStore and caches Get results in memory.
// Put and Delete go through to the wrapped store and drop the cached entry.
type CachedStore struct {
	store  TemplateStore
	config CacheConfig

	mu     sync.Mutex
	cache  map[string]*cacheEntry
	closed bool

	// generations counts invalidations per name and epoch counts
	// InvalidateAll calls. A read that started before either changed
	// is not cached.
	generations map[string]uint64
	epoch       uint64
}

// CacheConfig configures a CachedStore
type CacheConfig struct {
	// TTL is how long cached templates remain valid.
	// Default: 5 minutes.
	TTL time.Duration

	// MaxEntries bounds the cache; the least recently read entry is
	// evicted first.
	// Default: 1000.
	MaxEntries int

	// NegativeTTL is how long a "not found" answer is cached.
	// Zero disables negative caching.
	NegativeTTL time.Duration
}

// DefaultCacheConfig returns the default caching configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:         CacheDefaultTTL,
		MaxEntries:  CacheDefaultMaxEntries,
		NegativeTTL: CacheDefaultNegativeTTL,
	}
}

type cacheEntry struct {
	template   *StoredTemplate
	notFound   bool
	cachedAt   time.Time
	accessedAt time.Time
}

// CacheStats reports the cache contents
type CacheStats struct {
	Entries         int
	ValidEntries    int
	NegativeEntries int
}

// NewCachedStore wraps store with caching
func NewCachedStore(store TemplateStore, config CacheConfig) *CachedStore {
	if config.TTL == 0 {
		config.TTL = CacheDefaultTTL
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = CacheDefaultMaxEntries
	}

	return &CachedStore{
		store:       store,
		config:      config,
		cache:       make(map[string]*cacheEntry),
		generations: make(map[string]uint64),
	}
}

// Get returns the cached template or reads it from the wrapped store
func (s *CachedStore) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, NewStorageClosedError()
	}
	if entry, ok := s.cache[name]; ok && s.isValid(entry) {
		entry.accessedAt = time.Now()
		s.mu.Unlock()

		if entry.notFound {
			return nil, NewTemplateNotFoundError(name)
		}
		stored := *entry.template
		return &stored, nil
	}
	generation, epoch := s.generations[name], s.epoch
	s.mu.Unlock()

	tmpl, err := s.store.Get(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	// invalidated while the read was in flight
	stale := s.generations[name] != generation || s.epoch != epoch
	if err != nil {
		if !stale && s.config.NegativeTTL > 0 && errors.Is(err, ErrTemplateNotFound) {
			s.addEntry(name, nil, true)
		}
		return nil, err
	}

	if !stale {
		s.addEntry(name, tmpl, false)
	}
	stored := *tmpl
	return &stored, nil
}

// Put writes through and invalidates the cached entry
func (s *CachedStore) Put(ctx context.Context, name string, source string) error {
	if err := s.store.Put(ctx, name, source); err != nil {
		return err
	}
	s.Invalidate(name)
	return nil
}

// Delete removes through and invalidates the cached entry
func (s *CachedStore) Delete(ctx context.Context, name string) error {
	err := s.store.Delete(ctx, name)
	s.Invalidate(name)
	return err
}

// List is not cached
func (s *CachedStore) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// Close drops the cache and closes the wrapped store
func (s *CachedStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.cache = nil
	s.mu.Unlock()

	return s.store.Close()
}

// Invalidate removes one entry from the cache.
// Reads of name already in flight will not cache their result.
func (s *CachedStore) Invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.generations[name]++
	s.mu.Unlock()
}

// InvalidateAll clears the cache
func (s *CachedStore) InvalidateAll() {
	s.mu.Lock()
	if !s.closed {
		s.cache = make(map[string]*cacheEntry)
		s.generations = make(map[string]uint64)
		s.epoch++
	}
	s.mu.Unlock()
}

// Stats returns cache statistics
func (s *CachedStore) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := CacheStats{Entries: len(s.cache)}
	for _, entry := range s.cache {
		if !s.isValid(entry) {
			continue
		}
		if entry.notFound {
			stats.NegativeEntries++
		} else {
			stats.ValidEntries++
		}
	}
	return stats
}

// isValid reports whether entry is within its TTL
func (s *CachedStore) isValid(entry *cacheEntry) bool {
	ttl := s.config.TTL
	if entry.notFound {
		ttl = s.config.NegativeTTL
	}
	return time.Since(entry.cachedAt) < ttl
}

// addEntry caches a lookup result, evicting the least recently read entry
// when full. Caller must hold the lock.
func (s *CachedStore) addEntry(name string, tmpl *StoredTemplate, notFound bool) {
	if _, exists := s.cache[name]; !exists && len(s.cache) >= s.config.MaxEntries {
		s.evictOldest()
	}

	now := time.Now()
	s.cache[name] = &cacheEntry{
		template:   tmpl,
		notFound:   notFound,
		cachedAt:   now,
		accessedAt: now,
	}
}

// evictOldest removes the least recently read entry. Caller must hold the lock.
func (s *CachedStore) evictOldest() {
	var oldestName string
	var oldest *cacheEntry
	for name, entry := range s.cache {
		if oldest == nil || entry.accessedAt.Before(oldest.accessedAt) {
			oldestName, oldest = name, entry
		}
	}
	if oldest != nil {
		delete(s.cache, oldestName)
	}
}
