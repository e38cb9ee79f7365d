package services

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/models/gorm"
	"cargo-charter/charterdesk/internal/providers"
)

const defaultSyncMaxAgeDays = 180

// syncableTypes are the OurAirports size classes worth keeping; heliports,
// seaplane bases and closed fields never carry scheduled cargo traffic.
var syncableTypes = map[string]struct{}{
	"large_airport":  {},
	"medium_airport": {},
	"small_airport":  {},
}

// northAmericanCountries covers the ISO codes OurAirports ships with an
// empty continent column; they all belong to NA.
var northAmericanCountries = map[string]struct{}{
	"US": {}, "CA": {}, "MX": {}, "GT": {}, "BZ": {}, "SV": {}, "HN": {},
	"NI": {}, "CR": {}, "PA": {}, "CU": {}, "JM": {}, "HT": {}, "DO": {},
	"BS": {}, "BB": {}, "TT": {}, "GD": {}, "LC": {}, "VC": {}, "AG": {},
	"DM": {}, "KN": {}, "AI": {}, "VG": {}, "VI": {}, "PR": {}, "GP": {},
	"MQ": {}, "BL": {}, "MF": {}, "SX": {}, "CW": {}, "AW": {}, "BQ": {},
	"TC": {}, "KY": {}, "BM": {}, "GL": {},
}

// airportSource fetches the OurAirports reference files.
type airportSource interface {
	FetchAirports(ctx context.Context) ([]providers.AirportRecord, error)
	FetchCountries(ctx context.Context) ([]providers.CountryRecord, error)
}

// geographyStore is the geography persistence the sync flow needs.
type geographyStore interface {
	BatchUpsert(ctx context.Context, rows []gorm.AirportGeography) error
	Count(ctx context.Context) (int64, error)
	CreateSyncLog(ctx context.Context, entry *gorm.GeographySyncLog) error
	UpdateSyncLog(ctx context.Context, entry *gorm.GeographySyncLog) error
	LatestSuccessfulSync(ctx context.Context) (*gorm.GeographySyncLog, error)
}

// GeographyService imports the OurAirports reference data into the
// airports_geography table and reports sync state.
type GeographyService struct {
	source  airportSource
	store   geographyStore
	cache   common.CacheInterface
	config  runtimeConfig
	running atomic.Bool
}

func NewGeographyService(source airportSource, store geographyStore, cache common.CacheInterface, config runtimeConfig) *GeographyService {
	return &GeographyService{
		source: source,
		store:  store,
		cache:  cache,
		config: config,
	}
}

// Sync runs one geography import. Without force, a successful sync
// within the configured max age short-circuits to SKIPPED. Only one
// sync runs at a time.
func (s *GeographyService) Sync(ctx context.Context, eventType string, force bool) (*dtos.GeographySyncResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, &QueryError{
			Code:    constants.ErrCodeSyncInProgress,
			Message: constants.GetErrorMessage(constants.ErrCodeSyncInProgress),
		}
	}
	defer s.running.Store(false)

	if !force {
		last, err := s.store.LatestSuccessfulSync(ctx)
		if err != nil {
			return nil, &QueryError{
				Code:    constants.ErrCodeQueryFailed,
				Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
				Err:     err,
			}
		}
		if last != nil && !s.isStale(ctx, last) {
			return &dtos.GeographySyncResult{
				EventType:      eventType,
				Status:         constants.SyncStatusSkipped,
				AirportsSynced: last.AirportsSynced,
				Skipped:        true,
				LastSyncedAt:   &last.StartedAt,
			}, nil
		}
	}

	entry := &gorm.GeographySyncLog{
		EventType: eventType,
		Status:    constants.SyncStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := s.store.CreateSyncLog(ctx, entry); err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	rows, err := s.buildRows(ctx)
	if err != nil {
		s.failSync(ctx, entry, err)
		return nil, &QueryError{
			Code:    constants.ErrCodeSyncFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeSyncFailed),
			Err:     err,
		}
	}

	if err := s.store.BatchUpsert(ctx, rows); err != nil {
		s.failSync(ctx, entry, err)
		return nil, &QueryError{
			Code:    constants.ErrCodeSyncFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeSyncFailed),
			Err:     err,
		}
	}

	now := time.Now().UTC()
	entry.Status = constants.SyncStatusSuccess
	entry.AirportsSynced = len(rows)
	entry.FinishedAt = &now
	if err := s.store.UpdateSyncLog(ctx, entry); err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeSyncFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeSyncFailed),
			Err:     err,
		}
	}

	// The cached lookup map is stale now; the cache worker rebuilds it.
	s.cache.Delete(string(constants.CachePrefixGeographyMap))

	return &dtos.GeographySyncResult{
		EventType:      eventType,
		Status:         constants.SyncStatusSuccess,
		AirportsSynced: len(rows),
	}, nil
}

// ShouldSync reports whether the reference data is missing or stale.
func (s *GeographyService) ShouldSync(ctx context.Context) (bool, error) {
	last, err := s.store.LatestSuccessfulSync(ctx)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}
	return s.isStale(ctx, last), nil
}

// Status reports reference-data coverage and the latest completed sync.
func (s *GeographyService) Status(ctx context.Context) (*dtos.GeographyStatusResult, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	out := &dtos.GeographyStatusResult{AirportCount: count}

	last, err := s.store.LatestSuccessfulSync(ctx)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}
	if last != nil {
		out.LastEventType = last.EventType
		out.LastStatus = last.Status
		out.LastSyncedAt = &last.StartedAt
	}

	return out, nil
}

func (s *GeographyService) isStale(ctx context.Context, last *gorm.GeographySyncLog) bool {
	maxAgeDays := s.config.GetIntVal(ctx, common.ConfigKeyGeoSyncMaxAgeDays, defaultSyncMaxAgeDays)
	return time.Since(last.StartedAt) > time.Duration(maxAgeDays)*24*time.Hour
}

// failSync records the failure on the sync log row. The original error
// is what the caller reports; a bookkeeping error here cannot replace it.
func (s *GeographyService) failSync(ctx context.Context, entry *gorm.GeographySyncLog, cause error) {
	now := time.Now().UTC()
	entry.Status = constants.SyncStatusFailed
	entry.Detail = cause.Error()
	entry.FinishedAt = &now
	_ = s.store.UpdateSyncLog(ctx, entry)
}

// buildRows fetches both OurAirports files concurrently and merges them:
// keep IATA-coded airports of the syncable size classes, join country
// names by ISO code falling back to the code itself, patch the missing
// NA continent, drop anything still without a continent.
func (s *GeographyService) buildRows(ctx context.Context) ([]gorm.AirportGeography, error) {
	var (
		airports  []providers.AirportRecord
		countries []providers.CountryRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		airports, err = s.source.FetchAirports(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		countries, err = s.source.FetchCountries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	countryNames := make(map[string]string, len(countries))
	for _, c := range countries {
		countryNames[c.Code] = c.Name
	}

	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(airports))
	rows := make([]gorm.AirportGeography, 0, len(airports))

	for _, a := range airports {
		iata := strings.ToUpper(strings.TrimSpace(a.IATACode))
		if iata == "" {
			continue
		}
		if _, ok := syncableTypes[a.Type]; !ok {
			continue
		}
		// OurAirports occasionally assigns one IATA code twice; keep the
		// first so the batch upsert never touches a row twice.
		if _, dup := seen[iata]; dup {
			continue
		}
		seen[iata] = struct{}{}

		countryCode := strings.TrimSpace(a.CountryCode)
		continent := strings.TrimSpace(a.Continent)
		if continent == "" {
			if _, ok := northAmericanCountries[countryCode]; ok {
				continent = "NA"
			}
		}
		if continent == "" {
			continue
		}

		countryName := strings.TrimSpace(countryNames[countryCode])
		if countryName == "" {
			countryName = countryCode
		}

		row := gorm.AirportGeography{
			IATACode:    iata,
			AirportName: strings.TrimSpace(a.Name),
			City:        strings.TrimSpace(a.Municipality),
			CountryCode: countryCode,
			CountryName: countryName,
			Continent:   continent,
			Latitude:    a.Latitude,
			Longitude:   a.Longitude,
			UpdatedAt:   now,
		}
		if a.ElevationFt != nil {
			row.ElevationFt = sql.NullInt64{Int64: *a.ElevationFt, Valid: true}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
