package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog entry. The catalog is the authoritative
// source for tax rates: client-supplied tax on order submissions is always
// replaced by the rate configured here.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Price       float64        `gorm:"not null;default:0" json:"price"`
	TaxRate     float64        `gorm:"not null;default:0" json:"tax_rate"` // percentage, e.g. 6 means 6%
	IsCombo     bool           `gorm:"not null;default:false" json:"is_combo"`
	SubCategory string         `json:"sub_category"`
	AreaID      *uint          `gorm:"index" json:"area_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
