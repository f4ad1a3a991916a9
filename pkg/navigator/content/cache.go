package content

import (
	"sync"

	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
)

// Cache is a bounded LRU of page markup keyed by locator.
type Cache struct {
	mu      sync.Mutex
	markup  map[string]string
	order   []string // tracks insertion order for LRU eviction
	maxSize int
}

func NewCache() *Cache {
	return NewCacheWithSize(constants.DefaultCacheSize)
}

func NewCacheWithSize(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}
	return &Cache{
		markup:  make(map[string]string),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, exists := c.markup[key]; exists {
		// Move to end (most recently used)
		c.moveToEnd(key)
		return m, true
	}
	return "", false
}

func (c *Cache) Set(key string, markup string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If key already exists, just update and move to end
	if _, exists := c.markup[key]; exists {
		c.markup[key] = markup
		c.moveToEnd(key)
		return
	}

	// Evict oldest if at capacity
	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.markup[key] = markup
	c.order = append(c.order, key)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

func (c *Cache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *Cache) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.markup, oldest)
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markup = make(map[string]string)
	c.order = c.order[:0]
}
