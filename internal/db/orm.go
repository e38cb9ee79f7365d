package db

import (
	"fmt"
	"log"

	gormmodels "cargo-charter/charterdesk/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// The sync job owns these tables; the scraper-fed tables are never
	// migrated from here.
	if err := db.AutoMigrate(
		&gormmodels.AirportGeography{},
		&gormmodels.AppConfig{},
		&gormmodels.GeographySyncLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate reference tables: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}
