package history

import "time"

// PeriodsCache holds the distinct years per user. Set is dropped when the
// user was invalidated after Generation was read.
type PeriodsCache interface {
	Get(userID string) ([]int, bool)
	Generation(userID string) uint64
	Set(userID string, years []int, ttl time.Duration, generation uint64)
	Delete(userID string)
}

type noopPeriodsCache struct{}

func (noopPeriodsCache) Get(string) ([]int, bool) {
	return nil, false
}

func (noopPeriodsCache) Generation(string) uint64 {
	return 0
}

func (noopPeriodsCache) Set(string, []int, time.Duration, uint64) {}

func (noopPeriodsCache) Delete(string) {}
