package models

import (
	"time"
)

// Order status values
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// Order represents one table visit's bill. Totals are always derived by
// recomputing over the full item lists, never edited incrementally.
// Orders are hard-deleted, so no soft-delete column is declared.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`
	TableID     *uint  `gorm:"index" json:"table_id,omitempty"`
	Table       *Table `gorm:"foreignKey:TableID" json:"-"`
	// TableDisplayName is filled from the Table relation for list views.
	TableDisplayName string  `gorm:"-" json:"table_name,omitempty"`
	Status           string  `gorm:"not null;default:'pending'" json:"status"` // pending, completed
	Subtotal         float64 `gorm:"not null;default:0" json:"subtotal"`
	TaxTotal         float64 `gorm:"not null;default:0" json:"tax_total"`
	OrderTotal       float64 `gorm:"not null;default:0" json:"order_total"`

	OrderItems []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	ComboItems []ComboLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"combo_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsCompleted reports whether the order has been settled
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// OrderLineItem is one simple product line within an order
type OrderLineItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Quantity    float64 `gorm:"not null;default:0" json:"quantity"`
	UnitPrice   float64 `gorm:"not null;default:0" json:"unit_price"`
	TaxRate     float64 `gorm:"not null;default:0" json:"tax_rate"` // percentage
}

// TableName specifies the table name for the OrderLineItem model
func (OrderLineItem) TableName() string {
	return "order_line_items"
}

// ComboLineItem is one combo product line within an order, carrying the
// customer's nested choice selections
type ComboLineItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ComboName string  `gorm:"not null" json:"combo_name"`
	Quantity  float64 `gorm:"not null;default:0" json:"quantity"`
	UnitPrice float64 `gorm:"not null;default:0" json:"unit_price"`
	TaxRate   float64 `gorm:"not null;default:0" json:"tax_rate"` // percentage

	Choices []ComboChoiceItem `gorm:"foreignKey:ComboLineItemID;constraint:OnDelete:CASCADE" json:"choices"`
}

// TableName specifies the table name for the ComboLineItem model
func (ComboLineItem) TableName() string {
	return "combo_line_items"
}

// ComboChoiceItem is one chosen sub-item within a combo line
type ComboChoiceItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ComboLineItemID uint    `gorm:"not null;index" json:"combo_line_item_id"`
	Name            string  `gorm:"not null" json:"name"`
	Quantity        float64 `gorm:"not null;default:0" json:"quantity"`
	GroupIndex      int     `gorm:"not null;default:0" json:"group_index"`
}

// TableName specifies the table name for the ComboChoiceItem model
func (ComboChoiceItem) TableName() string {
	return "combo_choice_items"
}
