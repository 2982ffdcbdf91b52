// Package cache memoizes country extraction. Alert descriptions repeat across
// bulletins and feed replays, and extraction scans every country variation.
package cache

import (
	"slices"
	"sync"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/couchcryptid/epi-surveillance-etl/internal/observability"
)

// CountryExtractor wraps a domain.CountryExtractor with an in-memory LRU cache
// keyed by the description text.
type CountryExtractor struct {
	inner   domain.CountryExtractor
	cache   *lruCache[[]string]
	metrics *observability.Metrics
}

// NewCountryExtractor creates a cache decorator around an extractor. metrics
// may be nil.
func NewCountryExtractor(inner domain.CountryExtractor, maxEntries int, metrics *observability.Metrics) *CountryExtractor {
	return &CountryExtractor{
		inner:   inner,
		cache:   newLRUCache[[]string](maxEntries),
		metrics: metrics,
	}
}

// ExtractCountries returns the cached codes for text, extracting on a miss.
// Empty text bypasses the cache.
func (c *CountryExtractor) ExtractCountries(text string) []string {
	if text == "" {
		return c.inner.ExtractCountries(text)
	}
	if codes, ok := c.cache.get(text); ok {
		c.record("hit")
		return slices.Clone(codes)
	}
	c.record("miss")
	codes := c.inner.ExtractCountries(text)
	c.cache.put(text, slices.Clone(codes))
	return codes
}

// Len returns the number of cached descriptions.
func (c *CountryExtractor) Len() int {
	return c.cache.len()
}

func (c *CountryExtractor) record(result string) {
	if c.metrics != nil {
		c.metrics.CountryCache.WithLabelValues(result).Inc()
	}
}

// lruCache is a simple thread-safe LRU cache.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
