package repositories

import (
	"context"

	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GeographyRepository handles airports_geography and its sync log
type GeographyRepository struct {
	db *gormlib.DB
}

// NewGeographyRepository creates a new geography repository
func NewGeographyRepository(db *gormlib.DB) *GeographyRepository {
	return &GeographyRepository{db: db}
}

// FindByIATA finds a geography row by IATA code (case-insensitive)
func (r *GeographyRepository) FindByIATA(ctx context.Context, iata string) (*gorm.AirportGeography, error) {
	var row gorm.AirportGeography

	err := r.db.WithContext(ctx).
		Where("UPPER(iata_code) = UPPER(?)", iata).
		First(&row).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// GetAll returns every geography row, for cache prewarming
func (r *GeographyRepository) GetAll(ctx context.Context) ([]gorm.AirportGeography, error) {
	var rows []gorm.AirportGeography
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

// BatchUpsert inserts geography rows in chunks, updating existing rows
// on IATA-code conflict so a re-sync refreshes stale data in place
func (r *GeographyRepository) BatchUpsert(ctx context.Context, rows []gorm.AirportGeography) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "iata_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"airport_name", "city", "country_code", "country_name",
				"continent", "latitude", "longitude", "elevation_ft", "updated_at",
			}),
		}).
		CreateInBatches(rows, 100).Error
}

// DeleteAll clears the table ahead of a full re-import
func (r *GeographyRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gorm.AirportGeography{}).Error
}

// Count returns total number of geography rows
func (r *GeographyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.AirportGeography{}).Count(&count).Error
	return count, err
}

// CreateSyncLog records a sync attempt
func (r *GeographyRepository) CreateSyncLog(ctx context.Context, entry *gorm.GeographySyncLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// UpdateSyncLog persists the final state of a sync attempt
func (r *GeographyRepository) UpdateSyncLog(ctx context.Context, entry *gorm.GeographySyncLog) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// LatestSuccessfulSync returns the most recent completed sync, or nil
// when the table has never been synced
func (r *GeographyRepository) LatestSuccessfulSync(ctx context.Context) (*gorm.GeographySyncLog, error) {
	var entry gorm.GeographySyncLog

	err := r.db.WithContext(ctx).
		Where("status = ?", constants.SyncStatusSuccess).
		Order("started_at DESC").
		First(&entry).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}
