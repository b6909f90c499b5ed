package inmemory

import "time"

type PeriodsCache struct {
	cache *TTLCache[string, []int]
}

func NewPeriodsCache(maxEntries int) *PeriodsCache {
	return &PeriodsCache{cache: NewTTLCache[string, []int](maxEntries)}
}

func (c *PeriodsCache) Get(userID string) ([]int, bool) {
	years, ok := c.cache.Get(userID)
	if !ok {
		return nil, false
	}
	return append([]int(nil), years...), true
}

func (c *PeriodsCache) Generation(userID string) uint64 {
	return c.cache.Generation()
}

func (c *PeriodsCache) Set(userID string, years []int, ttl time.Duration, generation uint64) {
	c.cache.SetIfGeneration(userID, append([]int(nil), years...), ttl, generation)
}

func (c *PeriodsCache) Delete(userID string) {
	c.cache.Delete(userID)
}
