package gorm

import (
	"database/sql"
	"time"
)

// AirportGeography is one OurAirports-derived reference row, keyed by
// IATA code. The sync job owns this table.
type AirportGeography struct {
	ID          uint          `gorm:"column:id;primaryKey;autoIncrement"`
	IATACode    string        `gorm:"column:iata_code;type:varchar(3);not null;uniqueIndex"`
	AirportName string        `gorm:"column:airport_name;type:text;not null"`
	City        string        `gorm:"column:city;type:varchar(100)"`
	CountryCode string        `gorm:"column:country_code;type:varchar(2)"`
	CountryName string        `gorm:"column:country_name;type:varchar(100)"`
	Continent   string        `gorm:"column:continent;type:varchar(2)"`
	Latitude    float64       `gorm:"column:latitude;type:numeric(10,6)"`
	Longitude   float64       `gorm:"column:longitude;type:numeric(10,6)"`
	ElevationFt sql.NullInt64 `gorm:"column:elevation_ft;type:integer"`
	CreatedAt   time.Time     `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;default:now()"`
}

// TableName specifies the table name for GORM
func (AirportGeography) TableName() string {
	return "airports_geography"
}
