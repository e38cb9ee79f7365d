package repositories

import (
	"context"
	"time"

	"cargo-charter/charterdesk/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfigRepository handles the app_configs key/value table
type ConfigRepository struct {
	db *gormlib.DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *gormlib.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetAll returns every stored config pair
func (r *ConfigRepository) GetAll(ctx context.Context) ([]gorm.AppConfig, error) {
	var rows []gorm.AppConfig
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

// Get returns one config pair, or nil when the key is unset
func (r *ConfigRepository) Get(ctx context.Context, key string) (*gorm.AppConfig, error) {
	var row gorm.AppConfig

	err := r.db.WithContext(ctx).
		Where("config_key = ?", key).
		First(&row).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// Upsert writes a config value, replacing any existing one for the key
func (r *ConfigRepository) Upsert(ctx context.Context, key, value string) error {
	row := gorm.AppConfig{
		ConfigKey:   key,
		ConfigValue: value,
		UpdatedAt:   time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "config_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"config_value", "updated_at"}),
		}).
		Create(&row).Error
}
