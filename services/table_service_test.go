package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
)

func setupTableTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Area{}, &models.Table{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func createTestTable(t *testing.T, db *gorm.DB, name string) *models.Table {
	table := models.Table{Name: name, Pax: 4}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}
	return &table
}

// assertSingleOccupancy verifies that reserve and open status are never
// simultaneously true
func assertSingleOccupancy(t *testing.T, table *models.Table) {
	t.Helper()
	assert.False(t, table.Reserve.Status && table.Open.Status,
		"reserve.status and open.status must not both be true")
}

func TestReserveTable(t *testing.T) {
	db := setupTableTestDB(t)
	table := createTestTable(t, db, "T1")

	when := time.Now().Add(2 * time.Hour)
	reserved, err := ReserveTable(table.ID, "Dana Reyes", "555-0101", 4, when)
	assert.NoError(t, err)

	assert.True(t, reserved.Reserve.Status)
	assert.True(t, reserved.Disabled)
	assert.Equal(t, "Dana Reyes", reserved.Reserve.CustomerName)
	assert.Equal(t, "555-0101", reserved.Reserve.Phone)
	assert.Equal(t, 4, reserved.Reserve.Pax)
	assert.NotNil(t, reserved.Reserve.Time)
	assert.False(t, reserved.Open.Status)
	assertSingleOccupancy(t, reserved)
}

func TestReserveTable_AlreadyReserved(t *testing.T) {
	db := setupTableTestDB(t)
	table := createTestTable(t, db, "T1")

	when := time.Now().Add(time.Hour)
	_, err := ReserveTable(table.ID, "First Party", "555-0101", 2, when)
	assert.NoError(t, err)

	_, err = ReserveTable(table.ID, "Second Party", "555-0202", 2, when)
	assert.ErrorIs(t, err, ErrTableAlreadyReserved)

	// The original reservation is untouched
	var current models.Table
	db.First(&current, table.ID)
	assert.Equal(t, "First Party", current.Reserve.CustomerName)
}

func TestReserveTable_SeatedTable(t *testing.T) {
	db := setupTableTestDB(t)
	table := createTestTable(t, db, "T1")

	_, err := OpenTable(table.ID, "Seated Party", "555-0101", 4)
	assert.NoError(t, err)

	_, err = ReserveTable(table.ID, "Late Caller", "555-0202", 2, time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrTableOccupied)

	// The seated session is untouched and no reservation was written
	var current models.Table
	db.First(&current, table.ID)
	assert.True(t, current.Open.Status)
	assert.False(t, current.Reserve.Status)
	assert.False(t, current.Disabled)
	assert.Equal(t, "", current.Reserve.CustomerName)
	assertSingleOccupancy(t, &current)
}

func TestReserveTable_AfterToggleClose(t *testing.T) {
	db := setupTableTestDB(t)
	table := createTestTable(t, db, "T1")

	_, err := OpenTable(table.ID, "Dinner Party", "555-0101", 4)
	assert.NoError(t, err)
	_, err = ToggleTableOpen(table.ID, false)
	assert.NoError(t, err)

	// A closed table is reservable even though the old session fields remain
	reserved, err := ReserveTable(table.ID, "Next Party", "555-0303", 2, time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.True(t, reserved.Reserve.Status)
	assert.False(t, reserved.Open.Status)
	assertSingleOccupancy(t, reserved)
}

func TestReserveTable_NotFound(t *testing.T) {
	setupTableTestDB(t)

	_, err := ReserveTable(9999, "Nobody", "", 2, time.Now())
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCancelReservation(t *testing.T) {
	db := setupTableTestDB(t)
	table := createTestTable(t, db, "T1")

	_, err := ReserveTable(table.ID, "Dana Reyes", "555-0101", 4, time.Now().Add(time.Hour))
	assert.NoError(t, err)

	cancelled, err := CancelReservation(table.ID)
	assert.NoError(t, err)

	assert.False(t, cancelled.Reserve.Status)
	assert.False(t, cancelled.Disabled)
	assert.Equal(t, "", cancelled.Reserve.CustomerName)
	assert.Equal(t, "", cancelled.Reserve.Phone)
	assert.Equal(t, 0, cancelled.Reserve.Pax)
	assert.Nil(t, cancelled.Reserve.Time)

	// The table is available for a new reservation again
	_, err = ReserveTable(table.ID, "Next Party", "555-0303", 2, time.Now().Add(time.Hour))
	assert.NoError(t, err)
}

func TestCancelReservation_NotFound(t *testing.T) {
	setupTableTestDB(t)

	_, err := CancelReservation(9999)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestOpenTable_ConvertsReservation(t *testing.T) {
	db := setupTableTestDB(t)
	table := createTestTable(t, db, "T1")

	_, err := ReserveTable(table.ID, "Dana Reyes", "555-0101", 4, time.Now().Add(time.Hour))
	assert.NoError(t, err)

	opened, err := OpenTable(table.ID, "Dana Reyes", "555-0101", 4)
	assert.NoError(t, err)

	assert.True(t, opened.Open.Status)
	assert.Equal(t, "Dana Reyes", opened.Open.CustomerName)
	assert.NotNil(t, opened.Open.Time)

	// Reservation state is fully cleared by seating
	assert.False(t, opened.Reserve.Status)
	assert.False(t, opened.Disabled)
	assert.Equal(t, "", opened.Reserve.CustomerName)
	assert.Nil(t, opened.Reserve.Time)
	assertSingleOccupancy(t, opened)
}

func TestOpenTable_WithoutReservation(t *testing.T) {
	db := setupTableTestDB(t)
	table := createTestTable(t, db, "T1")

	opened, err := OpenTable(table.ID, "Walk In", "", 2)
	assert.NoError(t, err)

	assert.True(t, opened.Open.Status)
	assert.False(t, opened.Reserve.Status)
	assertSingleOccupancy(t, opened)
}

func TestToggleTableOpen(t *testing.T) {
	db := setupTableTestDB(t)
	table := createTestTable(t, db, "T1")

	_, err := OpenTable(table.ID, "Dana Reyes", "555-0101", 4)
	assert.NoError(t, err)

	closed, err := ToggleTableOpen(table.ID, false)
	assert.NoError(t, err)

	assert.False(t, closed.Open.Status)
	// Toggle flips status only; the session fields are left in place
	assert.Equal(t, "Dana Reyes", closed.Open.CustomerName)
	assertSingleOccupancy(t, closed)

	reopened, err := ToggleTableOpen(table.ID, true)
	assert.NoError(t, err)
	assert.True(t, reopened.Open.Status)
}

func TestToggleTableOpen_NotFound(t *testing.T) {
	setupTableTestDB(t)

	_, err := ToggleTableOpen(9999, true)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestListDisabledTables(t *testing.T) {
	db := setupTableTestDB(t)
	t1 := createTestTable(t, db, "T1")
	t2 := createTestTable(t, db, "T2")
	createTestTable(t, db, "T3")

	_, err := ReserveTable(t1.ID, "Party A", "", 2, time.Now().Add(time.Hour))
	assert.NoError(t, err)
	_, err = ReserveTable(t2.ID, "Party B", "", 2, time.Now().Add(time.Hour))
	assert.NoError(t, err)

	ids, err := ListDisabledTables()
	assert.NoError(t, err)
	assert.Equal(t, []uint{t1.ID, t2.ID}, ids)

	// Cancelling releases the block
	_, err = CancelReservation(t1.ID)
	assert.NoError(t, err)

	ids, err = ListDisabledTables()
	assert.NoError(t, err)
	assert.Equal(t, []uint{t2.ID}, ids)
}
