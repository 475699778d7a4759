package store

import (
	"container/list"
	"sync"

	"github.com/pfjus/Weather-Chatbot/internal/weather"
)

// DefaultCacheSize bounds the cache to the most-recently-used distinct cities.
const DefaultCacheSize = 64

// SnapshotCache is a concurrency-safe in-memory LRU cache of current-weather
// snapshots keyed by normalized city name. Entries never expire by time;
// they are only displaced by more recently used cities.
type SnapshotCache struct {
	mu sync.Mutex

	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type cacheEntry struct {
	city     string
	snapshot weather.Snapshot
}

// NewSnapshotCache creates a cache holding up to capacity cities.
// If capacity is <= 0, DefaultCacheSize is used.
func NewSnapshotCache(capacity int) *SnapshotCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &SnapshotCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached snapshot for a city, marking it as recently used.
func (c *SnapshotCache) Get(city string) (weather.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[city]
	if !ok {
		return weather.Snapshot{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).snapshot, true
}

// Put stores a snapshot for a city. Writes are idempotent replacements;
// inserting beyond capacity evicts the least recently used city.
func (c *SnapshotCache) Put(city string, snapshot weather.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[city]; ok {
		el.Value.(*cacheEntry).snapshot = snapshot
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&cacheEntry{city: city, snapshot: snapshot})
	c.entries[city] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).city)
		}
	}
}

// Len returns the number of cached cities.
func (c *SnapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
