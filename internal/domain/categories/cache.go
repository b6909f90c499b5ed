package categories

import "time"

// Cache holds per-(user, type) category lists. Writers invalidate explicitly.
// Set is dropped when the key was invalidated after Generation was read.
type Cache interface {
	Get(userID string, categoryType Type) ([]Category, bool)
	Generation(userID string, categoryType Type) uint64
	Set(userID string, categoryType Type, categories []Category, ttl time.Duration, generation uint64)
	Delete(userID string, categoryType Type)
}

type noopCache struct{}

func (noopCache) Get(string, Type) ([]Category, bool) {
	return nil, false
}

func (noopCache) Generation(string, Type) uint64 {
	return 0
}

func (noopCache) Set(string, Type, []Category, time.Duration, uint64) {}

func (noopCache) Delete(string, Type) {}
