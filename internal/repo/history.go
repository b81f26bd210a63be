// internal/repo/history.go
package repo

import (
	"sync"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
)

// HistoryCache is the session-scoped list of completed predictions. It is
// seeded from the backend history fetch and grows as uploads complete; it
// is never written to the state store.
type HistoryCache struct {
	mu          sync.RWMutex
	predictions []models.Prediction
}

func NewHistoryCache() *HistoryCache {
	return &HistoryCache{}
}

// Seed replaces the cache content with a fresh backend fetch.
func (c *HistoryCache) Seed(predictions []models.Prediction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.predictions = append([]models.Prediction(nil), predictions...)
}

// Add prepends a newly completed prediction, newest first like the
// backend history listing.
func (c *HistoryCache) Add(p models.Prediction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]models.Prediction, 0, len(c.predictions)+1)
	next = append(next, p)
	next = append(next, c.predictions...)
	c.predictions = next
}

// List returns the cached predictions, newest first.
func (c *HistoryCache) List() []models.Prediction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Prediction(nil), c.predictions...)
}

// DashboardStats are the aggregates the dashboard renders.
type DashboardStats struct {
	Total     int            `json:"total"`
	MDR       int            `json:"mdr"`
	Pathogens map[string]int `json:"pathogens"`
}

// Stats computes the dashboard aggregates over the cache.
func (c *HistoryCache) Stats() DashboardStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := DashboardStats{Pathogens: map[string]int{}}
	for _, p := range c.predictions {
		stats.Total++
		if p.MDR {
			stats.MDR++
		}
		if p.Pathogen != "" {
			stats.Pathogens[p.Pathogen]++
		}
	}
	return stats
}
