package tenant

import (
	"container/list"
	"sync"
	"time"
)

// Cache holds the tenant list between resolutions.
type Cache interface {
	Get(key string) ([]Tenant, bool)
	Set(key string, tenants []Tenant, ttl time.Duration)
	Delete(key string)
}

// DefaultCacheSize is the default maximum number of entries in the cache.
const DefaultCacheSize = 16

type cacheItem struct {
	key       string
	tenants   []Tenant
	expiresAt time.Time
}

// inMemoryCache is an LRU cache with lazy expiry.
type inMemoryCache struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	lru     *list.List // front is most recently used
	maxSize int
	now     func() time.Time
}

// NewInMemoryCache creates an LRU cache holding at most maxSize entries.
// Non-positive sizes use DefaultCacheSize.
func NewInMemoryCache(maxSize int) Cache {
	return newInMemoryCache(maxSize, time.Now)
}

func newInMemoryCache(maxSize int, now func() time.Time) *inMemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &inMemoryCache{
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		maxSize: maxSize,
		now:     now,
	}
}

func (c *inMemoryCache) Get(key string) ([]Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	item := el.Value.(*cacheItem)
	if c.now().After(item.expiresAt) {
		c.lru.Remove(el)
		delete(c.items, key)
		return nil, false
	}
	c.lru.MoveToFront(el)
	return cloneTenants(item.tenants), true
}

func (c *inMemoryCache) Set(key string, tenants []Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem{key: key, tenants: cloneTenants(tenants), expiresAt: c.now().Add(ttl)}
	if el, ok := c.items[key]; ok {
		el.Value = item
		c.lru.MoveToFront(el)
		return
	}
	if c.lru.Len() >= c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheItem).key)
		}
	}
	c.items[key] = c.lru.PushFront(item)
}

func (c *inMemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.lru.Remove(el)
		delete(c.items, key)
	}
}

// noOpCache never stores anything.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() Cache {
	return noOpCache{}
}

func (noOpCache) Get(string) ([]Tenant, bool)         { return nil, false }
func (noOpCache) Set(string, []Tenant, time.Duration) {}
func (noOpCache) Delete(string)                       {}

func cloneTenants(in []Tenant) []Tenant {
	if in == nil {
		return nil
	}
	out := make([]Tenant, len(in))
	copy(out, in)
	return out
}
