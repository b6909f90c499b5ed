package inmemory

import (
	"container/list"
	"sync"
	"time"
)

// TTLCache is a size-bounded cache whose entries expire individually. The
// least recently used entry is evicted when the cache is full.
type TTLCache[K comparable, V any] struct {
	mu         sync.Mutex
	maxEntries int
	items      map[K]*list.Element
	order      *list.List
	generation uint64
	now        func() time.Time
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

func NewTTLCache[K comparable, V any](maxEntries int) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		maxEntries: maxEntries,
		items:      make(map[K]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	item := elem.Value.(*entry[K, V])
	if !item.expiresAt.After(c.now()) {
		c.remove(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return item.value, true
}

// Set stores value for ttl. A non-positive ttl removes the key instead.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value, ttl)
}

// Generation changes whenever an entry is invalidated. Readers take it
// before loading from the source and hand it to SetIfGeneration.
func (c *TTLCache[K, V]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetIfGeneration stores value only if nothing was invalidated since
// generation was read, so a slow load cannot resurrect data a writer has
// already dropped.
func (c *TTLCache[K, V]) SetIfGeneration(key K, value V, ttl time.Duration, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != generation {
		return false
	}
	c.set(key, value, ttl)
	return true
}

func (c *TTLCache[K, V]) set(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		c.generation++
		if elem, ok := c.items[key]; ok {
			c.remove(elem)
		}
		return
	}

	item := &entry[K, V]{key: key, value: value, expiresAt: c.now().Add(ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = item
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(item)
	if c.maxEntries > 0 && c.order.Len() > c.maxEntries {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *TTLCache[K, V]) remove(elem *list.Element) {
	item := elem.Value.(*entry[K, V])
	delete(c.items, item.key)
	c.order.Remove(elem)
}
