package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
)

// ReserveTable transitions a table from Available to Reserved and blocks it
// (disabled=true) until the reservation is cancelled, expired or seated.
//
// The transition is a single conditional UPDATE gated on reserve_status and
// open_status so that two concurrent reserve calls cannot both win and a
// seated table cannot be double-booked; the loser sees zero affected rows.
func ReserveTable(tableID uint, customerName, phone string, pax int, when time.Time) (*models.Table, error) {
	db := config.GetDB()

	result := db.Model(&models.Table{}).
		Where("id = ? AND reserve_status = ? AND open_status = ?", tableID, false, false).
		Updates(map[string]any{
			"reserve_status":        true,
			"reserve_customer_name": customerName,
			"reserve_phone":         phone,
			"reserve_pax":           pax,
			"reserve_time":          when,
			"disabled":              true,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to reserve table: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// The table does not exist, is already reserved, or is seated
		var table models.Table
		if err := db.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTableNotFound
			}
			return nil, fmt.Errorf("failed to load table: %w", err)
		}
		if table.Open.Status {
			return nil, ErrTableOccupied
		}
		return nil, ErrTableAlreadyReserved
	}

	return loadTable(db, tableID)
}

// CancelReservation transitions a table from Reserved back to Available,
// clearing every reservation field and the disabled flag
func CancelReservation(tableID uint) (*models.Table, error) {
	db := config.GetDB()

	if _, err := loadTable(db, tableID); err != nil {
		return nil, err
	}

	result := db.Model(&models.Table{}).
		Where("id = ?", tableID).
		Updates(clearReservationValues())
	if result.Error != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", result.Error)
	}

	return loadTable(db, tableID)
}

// OpenTable seats a party at a table. Any existing reservation state is
// cleared unconditionally, so a reservation converts directly into an open
// session without an intermediate cancel.
func OpenTable(tableID uint, customerName, phone string, pax int) (*models.Table, error) {
	db := config.GetDB()

	if _, err := loadTable(db, tableID); err != nil {
		return nil, err
	}

	now := time.Now()
	values := clearReservationValues()
	values["open_status"] = true
	values["open_customer_name"] = customerName
	values["open_phone"] = phone
	values["open_pax"] = pax
	values["open_time"] = now

	result := db.Model(&models.Table{}).Where("id = ?", tableID).Updates(values)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to open table: %w", result.Error)
	}

	return loadTable(db, tableID)
}

// ToggleTableOpen sets the open status directly. Settlement flows use this
// to close a table (Open -> Available); the open customer fields are left
// in place.
func ToggleTableOpen(tableID uint, status bool) (*models.Table, error) {
	db := config.GetDB()

	if _, err := loadTable(db, tableID); err != nil {
		return nil, err
	}

	result := db.Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("open_status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to toggle table status: %w", result.Error)
	}

	return loadTable(db, tableID)
}

// ListDisabledTables returns the ids of all tables currently blocked by a
// reservation
func ListDisabledTables() ([]uint, error) {
	db := config.GetDB()

	var ids []uint
	if err := db.Model(&models.Table{}).
		Where("disabled = ?", true).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list disabled tables: %w", err)
	}

	return ids, nil
}

// clearReservationValues returns the column values that reset a table's
// reservation block and unblock it
func clearReservationValues() map[string]any {
	return map[string]any{
		"reserve_status":        false,
		"reserve_customer_name": "",
		"reserve_phone":         "",
		"reserve_pax":           0,
		"reserve_time":          nil,
		"disabled":              false,
	}
}

// loadTable fetches a table by id, mapping a missing row to ErrTableNotFound
func loadTable(db *gorm.DB, tableID uint) (*models.Table, error) {
	var table models.Table
	if err := db.Preload("Area").First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to load table: %w", err)
	}
	return &table, nil
}
