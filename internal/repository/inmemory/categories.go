package inmemory

import (
	"time"

	categoriesdomain "budgeteer-go/internal/domain/categories"
)

type categoriesKey struct {
	userID       string
	categoryType categoriesdomain.Type
}

type CategoriesCache struct {
	cache *TTLCache[categoriesKey, []categoriesdomain.Category]
}

func NewCategoriesCache(maxEntries int) *CategoriesCache {
	return &CategoriesCache{cache: NewTTLCache[categoriesKey, []categoriesdomain.Category](maxEntries)}
}

func (c *CategoriesCache) Get(userID string, categoryType categoriesdomain.Type) ([]categoriesdomain.Category, bool) {
	items, ok := c.cache.Get(categoriesKey{userID: userID, categoryType: categoryType})
	if !ok {
		return nil, false
	}
	return cloneCategories(items), true
}

func (c *CategoriesCache) Generation(userID string, categoryType categoriesdomain.Type) uint64 {
	return c.cache.Generation()
}

func (c *CategoriesCache) Set(userID string, categoryType categoriesdomain.Type, categories []categoriesdomain.Category, ttl time.Duration, generation uint64) {
	c.cache.SetIfGeneration(categoriesKey{userID: userID, categoryType: categoryType}, cloneCategories(categories), ttl, generation)
}

func (c *CategoriesCache) Delete(userID string, categoryType categoriesdomain.Type) {
	c.cache.Delete(categoriesKey{userID: userID, categoryType: categoryType})
}

func cloneCategories(categories []categoriesdomain.Category) []categoriesdomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]categoriesdomain.Category, len(categories))
	copy(cloned, categories)
	return cloned
}
