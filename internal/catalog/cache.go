package catalog

import (
	"sync"

	"github.com/nijamuddin66526-boop/offerzon/internal/models"
)

// Cache holds the current deal collection snapshot. The listing store's
// subscription replaces it wholesale (last write wins, no merging); readers
// get a copy so the pipeline can never observe a partially applied update.
type Cache struct {
	mu    sync.RWMutex
	deals []models.Deal
}

// NewCache seeds the cache with an initial collection, typically the embedded
// fallback set used before the first live snapshot arrives.
func NewCache(initial []models.Deal) *Cache {
	c := &Cache{}
	c.Replace(initial)
	return c
}

// Replace swaps in a new full-collection snapshot.
func (c *Cache) Replace(deals []models.Deal) {
	snapshot := make([]models.Deal, len(deals))
	copy(snapshot, deals)

	c.mu.Lock()
	c.deals = snapshot
	c.mu.Unlock()
}

// Snapshot returns a copy of the current collection.
func (c *Cache) Snapshot() []models.Deal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Deal, len(c.deals))
	copy(out, c.deals)
	return out
}

// Len reports the size of the current collection.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.deals)
}
