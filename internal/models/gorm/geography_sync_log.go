package gorm

import "time"

// GeographySyncLog records one geography sync attempt.
type GeographySyncLog struct {
	ID             uint       `gorm:"column:id;primaryKey;autoIncrement"`
	EventType      string     `gorm:"column:event_type;type:varchar(50);not null"`
	Status         string     `gorm:"column:status;type:varchar(20);not null"`
	AirportsSynced int        `gorm:"column:airports_synced"`
	Detail         string     `gorm:"column:detail;type:text"`
	StartedAt      time.Time  `gorm:"column:started_at;not null"`
	FinishedAt     *time.Time `gorm:"column:finished_at"`
}

// TableName specifies the table name for GORM
func (GeographySyncLog) TableName() string {
	return "geography_sync_log"
}
