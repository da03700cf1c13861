package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
	"github.com/bellavista-pos/bellavista-foh-api/services"
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

func TestCreateTableEndpoint(t *testing.T) {
	setupTableTestDB(t)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Successfully create table",
			requestBody: map[string]interface{}{
				"name":         "T1",
				"pax":          4,
				"minimumSpend": 50.0,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Fail with duplicate name",
			requestBody: map[string]interface{}{
				"name": "T1",
				"pax":  2,
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "TABLE_EXISTS",
		},
		{
			name:           "Fail with missing name",
			requestBody:    map[string]interface{}{"pax": 2},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	router := setupTestRouter()
	router.POST("/table", CreateTable)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/table", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}
		})
	}
}

func TestReserveTableEndpoint(t *testing.T) {
	db := setupTableTestDB(t)
	table := seedTable(t, db, "T1")

	router := setupTestRouter()
	router.POST("/table/:tableId/reserve", ReserveTable)

	reserve := func(tableID uint, customer string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]interface{}{
			"customerName": customer,
			"phone":        "555-0101",
			"pax":          4,
			"reserveDate":  time.Now().Add(time.Hour).Format(time.RFC3339),
		})
		req, _ := http.NewRequest(http.MethodPost,
			fmt.Sprintf("/table/%d/reserve", tableID), bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// First reservation wins
	w := reserve(table.ID, "Dana Reyes")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.True(t, data["disabled"].(bool))
	reserveBlock := data["reserve"].(map[string]interface{})
	assert.True(t, reserveBlock["status"].(bool))
	assert.Equal(t, "Dana Reyes", reserveBlock["customer_name"])

	// Second reservation conflicts
	w = reserve(table.ID, "Someone Else")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "TABLE_ALREADY_RESERVED", errorData["code"])

	// Unknown table is a 404
	w = reserve(9999, "Ghost Party")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReserveTableEndpoint_SeatedTable(t *testing.T) {
	db := setupTableTestDB(t)
	table := seedTable(t, db, "T1")

	_, err := services.OpenTable(table.ID, "Seated Party", "555-0101", 4)
	assert.NoError(t, err)

	router := setupTestRouter()
	router.POST("/table/:tableId/reserve", ReserveTable)

	body, _ := json.Marshal(map[string]interface{}{
		"customerName": "Late Caller",
		"reserveDate":  time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/table/%d/reserve", table.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "TABLE_OCCUPIED", errorData["code"])

	// The table never picked up a reservation
	var current models.Table
	db.First(&current, table.ID)
	assert.False(t, current.Reserve.Status)
	assert.True(t, current.Open.Status)
}

func TestReserveTableEndpoint_BadDate(t *testing.T) {
	db := setupTableTestDB(t)
	table := seedTable(t, db, "T1")

	router := setupTestRouter()
	router.POST("/table/:tableId/reserve", ReserveTable)

	body, _ := json.Marshal(map[string]interface{}{
		"customerName": "Dana Reyes",
		"reserveDate":  "tonight at eight",
	})
	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/table/%d/reserve", table.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelReserveEndpoint(t *testing.T) {
	db := setupTableTestDB(t)
	table := seedTable(t, db, "T1")

	// Reserve directly through the model to isolate the endpoint
	now := time.Now().Add(time.Hour)
	db.Model(&models.Table{}).Where("id = ?", table.ID).Updates(map[string]any{
		"reserve_status":        true,
		"reserve_customer_name": "Dana Reyes",
		"reserve_time":          now,
		"disabled":              true,
	})

	router := setupTestRouter()
	router.POST("/table/:tableId/cancel-reserve", CancelReserveTable)

	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/table/%d/cancel-reserve", table.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var current models.Table
	db.First(&current, table.ID)
	assert.False(t, current.Reserve.Status)
	assert.False(t, current.Disabled)
	assert.Equal(t, "", current.Reserve.CustomerName)
}

func TestOpenTableEndpoint(t *testing.T) {
	db := setupTableTestDB(t)
	table := seedTable(t, db, "T1")

	// A pending reservation converts into the open session
	db.Model(&models.Table{}).Where("id = ?", table.ID).Updates(map[string]any{
		"reserve_status": true,
		"disabled":       true,
	})

	router := setupTestRouter()
	router.POST("/table/:tableId/open", OpenTable)

	body, _ := json.Marshal(map[string]interface{}{
		"customerName": "Dana Reyes",
		"phone":        "555-0101",
		"pax":          4,
	})
	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/table/%d/open", table.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	openBlock := data["open"].(map[string]interface{})
	reserveBlock := data["reserve"].(map[string]interface{})
	assert.True(t, openBlock["status"].(bool))
	assert.False(t, reserveBlock["status"].(bool))
	assert.False(t, data["disabled"].(bool))
}

func TestToggleOpenEndpoint(t *testing.T) {
	db := setupTableTestDB(t)
	table := seedTable(t, db, "T1")

	db.Model(&models.Table{}).Where("id = ?", table.ID).Update("open_status", true)

	router := setupTestRouter()
	router.PUT("/table/:tableId/toggle-open", ToggleOpenTable)

	toggle := func(status bool) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]interface{}{"status": status})
		req, _ := http.NewRequest(http.MethodPut,
			fmt.Sprintf("/table/%d/toggle-open", table.ID), bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := toggle(false)
	assert.Equal(t, http.StatusOK, w.Code)

	var current models.Table
	db.First(&current, table.ID)
	assert.False(t, current.Open.Status)
}

func TestListDisabledTablesEndpoint(t *testing.T) {
	db := setupTableTestDB(t)
	blocked := seedTable(t, db, "T1")
	seedTable(t, db, "T2")

	db.Model(&models.Table{}).Where("id = ?", blocked.ID).Updates(map[string]any{
		"reserve_status": true,
		"disabled":       true,
	})

	router := setupTestRouter()
	router.GET("/table/disabled", ListDisabledTables)

	req, _ := http.NewRequest(http.MethodGet, "/table/disabled", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	ids := response["data"].([]interface{})
	assert.Len(t, ids, 1)
	assert.Equal(t, float64(blocked.ID), ids[0])
}
