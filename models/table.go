package models

import (
	"time"

	"gorm.io/gorm"
)

// StatusBlock groups the fields of one occupancy status (reserve/open/close).
// Time is nullable: it is only set while the block is active.
type StatusBlock struct {
	Status       bool       `gorm:"not null;default:false" json:"status"`
	CustomerName string     `json:"customer_name"`
	Phone        string     `json:"phone"`
	Pax          int        `json:"pax"`
	Time         *time.Time `json:"time,omitempty"`
}

// Table represents a physical dining table.
//
// Occupancy invariant: after any single state transition at most one of
// Reserve.Status and Open.Status is true. Disabled is true exactly while a
// reservation is held, and cleared when the reservation is cancelled,
// expired, or converted into an open session.
//
// The Close block is declared for parity with reserve/open but no
// transition currently writes it.
type Table struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"uniqueIndex;not null" json:"name"`
	Pax          int            `gorm:"not null;default:0" json:"pax"`
	MinimumSpend float64        `gorm:"not null;default:0" json:"minimum_spend"`
	AreaID       *uint          `gorm:"index" json:"area_id,omitempty"`
	Area         *Area          `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	Disabled     bool           `gorm:"not null;default:false" json:"disabled"`
	Reserve      StatusBlock    `gorm:"embedded;embeddedPrefix:reserve_" json:"reserve"`
	Open         StatusBlock    `gorm:"embedded;embeddedPrefix:open_" json:"open"`
	Close        StatusBlock    `gorm:"embedded;embeddedPrefix:close_" json:"close"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Table model
func (Table) TableName() string {
	return "tables"
}
