package models

import (
	"time"

	"gorm.io/gorm"
)

// Area represents a named zone grouping tables (e.g. dining room, VIP section)
type Area struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Area model
func (Area) TableName() string {
	return "areas"
}
