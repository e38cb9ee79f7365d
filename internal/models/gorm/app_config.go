package gorm

import "time"

// AppConfig is one runtime-tunable key/value pair.
type AppConfig struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ConfigKey   string    `gorm:"column:config_key;type:varchar(100);not null;uniqueIndex"`
	ConfigValue string    `gorm:"column:config_value;type:text;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

// TableName specifies the table name for GORM
func (AppConfig) TableName() string {
	return "app_configs"
}
