package workers

import (
	"context"
	"log"
	"time"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/models/gorm"
)

// geographyLister is the slice of the geography repository the cache
// worker needs.
type geographyLister interface {
	GetAll(ctx context.Context) ([]gorm.AirportGeography, error)
}

// geographyMapTTL outlives the refresh interval so the lookup map never
// expires while the worker is healthy.
const geographyMapTTL = 2 * time.Hour

// GeoCacheWorker keeps the IATA to country-name lookup map warm so
// request paths never have to scan the geography table.
type GeoCacheWorker struct {
	cache common.CacheInterface
	repo  geographyLister
}

func NewGeoCacheWorker(cache common.CacheInterface, repo geographyLister) *GeoCacheWorker {
	return &GeoCacheWorker{cache: cache, repo: repo}
}

// Start fills the map immediately, then refreshes it on a fixed interval.
func (w *GeoCacheWorker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.Refill(ctx)

	for {
		select {
		case <-ticker.C:
			w.Refill(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Refill rebuilds the cached map from the reference table.
func (w *GeoCacheWorker) Refill(ctx context.Context) {
	rows, err := w.repo.GetAll(ctx)
	if err != nil {
		log.Printf("[GeoCacheWorker] Error loading geography rows: %v", err)
		return
	}
	if len(rows) == 0 {
		// Nothing synced yet; keep whatever entry is already there.
		return
	}

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.IATACode] = row.CountryName
	}
	w.cache.Set(string(constants.CachePrefixGeographyMap), names, geographyMapTTL)
	log.Printf("[GeoCacheWorker] Cached country names for %d airports", len(names))
}
