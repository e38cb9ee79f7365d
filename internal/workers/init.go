package workers

import (
	"context"
	"time"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/db/repositories"
)

type WorkersContainer struct {
	GeoCache *GeoCacheWorker
}

// InitWorkers starts the cache warmers and returns their handles.
func InitWorkers(
	cache common.CacheInterface,
	geoRepo *repositories.GeographyRepository,
) *WorkersContainer {
	geo := NewGeoCacheWorker(cache, geoRepo)

	// Start workers
	go geo.Start(context.Background(), 30*time.Minute)

	return &WorkersContainer{
		GeoCache: geo,
	}
}
