package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
	"github.com/bellavista-pos/bellavista-foh-api/utils"
)

// totalsTolerance is the allowed divergence between caller-supplied and
// recomputed settlement totals, one presentation rounding step of slack.
const totalsTolerance = 0.005

// CreateOrder normalizes and prices the submitted items, generates an
// order number and persists the order with its computed totals. Order
// number uniqueness is enforced by the database; a collision fails the
// create rather than retrying.
func CreateOrder(tableID *uint, items []RawOrderItem, comboItems []RawComboItem) (*models.Order, error) {
	db := config.GetDB()

	if tableID != nil {
		var table models.Table
		if err := db.First(&table, *tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTableNotFound
			}
			return nil, fmt.Errorf("failed to load table: %w", err)
		}
	}

	normalized, normalizedCombos, err := NormalizeItems(GetCatalogService(), items, comboItems)
	if err != nil {
		return nil, err
	}
	totals := CalculateTotals(normalized, normalizedCombos)

	order := models.Order{
		OrderNumber: utils.GenerateOrderNumber(time.Now()),
		TableID:     tableID,
		Status:      models.OrderStatusPending,
		Subtotal:    totals.Subtotal,
		TaxTotal:    totals.TaxTotal,
		OrderTotal:  totals.OrderTotal,
		OrderItems:  normalized,
		ComboItems:  normalizedCombos,
	}

	if err := db.Create(&order).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateOrderNumber
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return GetOrder(order.OrderNumber)
}

// UpdateOrderItems replaces an order's item lists in full and recomputes
// totals from the complete new set. Callers must resend every item they
// want kept; this is not a merge. Settled orders reject further updates.
func UpdateOrderItems(orderNumber string, items []RawOrderItem, comboItems []RawComboItem) (*models.Order, error) {
	db := config.GetDB()

	order, err := loadOrderByNumber(db, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted() {
		return nil, ErrOrderCompleted
	}

	normalized, normalizedCombos, err := NormalizeItems(GetCatalogService(), items, comboItems)
	if err != nil {
		return nil, err
	}
	totals := CalculateTotals(normalized, normalizedCombos)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := deleteOrderItems(tx, order.ID); err != nil {
			return err
		}

		for i := range normalized {
			normalized[i].OrderID = order.ID
		}
		for i := range normalizedCombos {
			normalizedCombos[i].OrderID = order.ID
		}
		if len(normalized) > 0 {
			if err := tx.Create(&normalized).Error; err != nil {
				return fmt.Errorf("failed to save order items: %w", err)
			}
		}
		if len(normalizedCombos) > 0 {
			if err := tx.Create(&normalizedCombos).Error; err != nil {
				return fmt.Errorf("failed to save combo items: %w", err)
			}
		}

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
			"subtotal":    totals.Subtotal,
			"tax_total":   totals.TaxTotal,
			"order_total": totals.OrderTotal,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return GetOrder(orderNumber)
}

// SettleOrder finalizes an order. The caller submits the subtotal and tax
// it computed independently, but the stored totals are recomputed from the
// order's own items through the same calculator; a submission that
// diverges from the recomputed figures is rejected. On success the order
// is marked completed, after which no further mutation is accepted, and a
// receipt is archived best-effort.
func SettleOrder(orderNumber string, subtotal, taxAmount float64) (*models.Order, error) {
	db := config.GetDB()

	order, err := loadOrderByNumber(db, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted() {
		return nil, ErrOrderCompleted
	}

	totals := CalculateTotals(order.OrderItems, order.ComboItems)
	if math.Abs(subtotal-totals.Subtotal) > totalsTolerance {
		return nil, NewValidationError(orderNumber,
			fmt.Sprintf("submitted subtotal %.2f does not match computed subtotal %.2f", subtotal, totals.Subtotal))
	}
	if math.Abs(taxAmount-totals.TaxTotal) > totalsTolerance {
		return nil, NewValidationError(orderNumber,
			fmt.Sprintf("submitted tax %.2f does not match computed tax %.2f", taxAmount, totals.TaxTotal))
	}

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
		"subtotal":    totals.Subtotal,
		"tax_total":   totals.TaxTotal,
		"order_total": totals.OrderTotal,
		"status":      models.OrderStatusCompleted,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to settle order: %w", err)
	}

	settled, err := GetOrder(orderNumber)
	if err != nil {
		return nil, err
	}

	if archiver := GetReceiptArchiver(); archiver != nil {
		if err := archiver.ArchiveReceipt(settled); err != nil {
			log.Printf("Failed to archive receipt for %s: %v", orderNumber, err)
		}
	}

	return settled, nil
}

// DeleteOrder removes an order and its item rows permanently
func DeleteOrder(orderID uint) error {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to load order: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteOrderItems(tx, order.ID); err != nil {
			return err
		}
		if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

// ListOrders returns all orders with their items and owning table name
func ListOrders() ([]models.Order, error) {
	db := config.GetDB()

	var orders []models.Order
	if err := orderQuery(db).Order("orders.id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		attachTableName(&orders[i])
	}
	return orders, nil
}

// GetOrder returns one order by its order number
func GetOrder(orderNumber string) (*models.Order, error) {
	db := config.GetDB()

	order, err := loadOrderByNumber(db, orderNumber)
	if err != nil {
		return nil, err
	}
	attachTableName(order)
	return order, nil
}

// GetOrdersByTable returns the orders attached to a table
func GetOrdersByTable(tableID uint) ([]models.Order, error) {
	db := config.GetDB()

	var orders []models.Order
	if err := orderQuery(db).Where("table_id = ?", tableID).Order("orders.id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for table: %w", err)
	}

	for i := range orders {
		attachTableName(&orders[i])
	}
	return orders, nil
}

// orderQuery preloads the associations every order projection needs
func orderQuery(db *gorm.DB) *gorm.DB {
	return db.Preload("OrderItems").Preload("ComboItems.Choices").Preload("Table")
}

// loadOrderByNumber fetches a fully loaded order, mapping a missing row to
// ErrOrderNotFound
func loadOrderByNumber(db *gorm.DB, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := orderQuery(db).Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// deleteOrderItems removes every item row belonging to an order, choices
// first so the delete works without relying on FK cascade support
func deleteOrderItems(tx *gorm.DB, orderID uint) error {
	comboIDs := tx.Model(&models.ComboLineItem{}).Select("id").Where("order_id = ?", orderID)
	if err := tx.Where("combo_line_item_id IN (?)", comboIDs).Delete(&models.ComboChoiceItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete combo choices: %w", err)
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.ComboLineItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete combo items: %w", err)
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderLineItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	return nil
}

// attachTableName copies the preloaded table's display name onto the order
func attachTableName(order *models.Order) {
	if order.Table != nil {
		order.TableDisplayName = order.Table.Name
	}
}

// isDuplicateKeyError detects a unique constraint violation
// (works with both PostgreSQL and SQLite)
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
