package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
	"github.com/bellavista-pos/bellavista-foh-api/services"
)

// CreateTableRequest represents the request body for creating a table
type CreateTableRequest struct {
	Name         string  `json:"name" binding:"required"`
	Pax          int     `json:"pax" binding:"omitempty,gte=0"`
	MinimumSpend float64 `json:"minimumSpend" binding:"omitempty,gte=0"`
	AreaID       *uint   `json:"areaId"`
}

// UpdateTableRequest represents the request body for editing a table
type UpdateTableRequest struct {
	Name         string   `json:"name" binding:"omitempty"`
	Pax          *int     `json:"pax"`
	MinimumSpend *float64 `json:"minimumSpend"`
	AreaID       *uint    `json:"areaId"`
}

// ReserveTableRequest represents the request body for reserving a table
type ReserveTableRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
	Phone        string `json:"phone"`
	Pax          int    `json:"pax" binding:"omitempty,gte=0"`
	ReserveDate  string `json:"reserveDate" binding:"required"`
}

// OpenTableRequest represents the request body for seating a party
type OpenTableRequest struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Pax          int    `json:"pax" binding:"omitempty,gte=0"`
}

// ToggleOpenRequest represents the request body for setting open status
type ToggleOpenRequest struct {
	Status *bool `json:"status" binding:"required"`
}

// CreateTable handles POST /api/v1/table
func CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	table := models.Table{
		Name:         req.Name,
		Pax:          req.Pax,
		MinimumSpend: req.MinimumSpend,
		AreaID:       req.AreaID,
	}

	db := config.GetDB()
	if err := db.Create(&table).Error; err != nil {
		// Check for duplicate name (works with both PostgreSQL and SQLite)
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique constraint") ||
			strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TABLE_EXISTS",
					"message": "A table with this name already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create table",
			},
		})
		return
	}

	logAdminAction(c, "Table created")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    table,
	})
}

// ListTables handles GET /api/v1/table
func ListTables(c *gin.Context) {
	db := config.GetDB()

	var tables []models.Table
	if err := db.Preload("Area").Order("id").Find(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tables,
	})
}

// UpdateTable handles PUT /api/v1/table/:tableId - edits table metadata
// only; occupancy state changes go through the dedicated transitions
func UpdateTable(c *gin.Context) {
	tableID, ok := tableIDParam(c)
	if !ok {
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var table models.Table
	if err := db.First(&table, tableID).Error; err != nil {
		respondServiceError(c, services.ErrTableNotFound)
		return
	}

	if req.Name != "" {
		table.Name = req.Name
	}
	if req.Pax != nil {
		table.Pax = *req.Pax
	}
	if req.MinimumSpend != nil {
		table.MinimumSpend = *req.MinimumSpend
	}
	if req.AreaID != nil {
		table.AreaID = req.AreaID
	}

	if err := db.Save(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update table",
			},
		})
		return
	}

	logAdminAction(c, "Table updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// DeleteTable handles DELETE /api/v1/table/:tableId
func DeleteTable(c *gin.Context) {
	tableID, ok := tableIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Table{}, tableID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete table",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		respondServiceError(c, services.ErrTableNotFound)
		return
	}

	logAdminAction(c, "Table deleted")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Table deleted",
	})
}

// ReserveTable handles POST /api/v1/table/:tableId/reserve
func ReserveTable(c *gin.Context) {
	tableID, ok := tableIDParam(c)
	if !ok {
		return
	}

	var req ReserveTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	when, err := time.Parse(time.RFC3339, req.ReserveDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "reserveDate must be an RFC3339 timestamp",
				"details": err.Error(),
			},
		})
		return
	}

	table, err := services.ReserveTable(tableID, req.CustomerName, req.Phone, req.Pax, when)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Table reserved",
		"data":    table,
	})
}

// CancelReserveTable handles POST /api/v1/table/:tableId/cancel-reserve
func CancelReserveTable(c *gin.Context) {
	tableID, ok := tableIDParam(c)
	if !ok {
		return
	}

	table, err := services.CancelReservation(tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reservation cancelled",
		"data":    table,
	})
}

// OpenTable handles POST /api/v1/table/:tableId/open - seats a party,
// converting any pending reservation into an open session
func OpenTable(c *gin.Context) {
	tableID, ok := tableIDParam(c)
	if !ok {
		return
	}

	var req OpenTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	table, err := services.OpenTable(tableID, req.CustomerName, req.Phone, req.Pax)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// ToggleOpenTable handles PUT /api/v1/table/:tableId/toggle-open
func ToggleOpenTable(c *gin.Context) {
	tableID, ok := tableIDParam(c)
	if !ok {
		return
	}

	var req ToggleOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	table, err := services.ToggleTableOpen(tableID, *req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// ListDisabledTables handles GET /api/v1/table/disabled
func ListDisabledTables(c *gin.Context) {
	ids, err := services.ListDisabledTables()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ids,
	})
}

// tableIDParam parses the :tableId path parameter, responding with an
// error envelope when it is not numeric
func tableIDParam(c *gin.Context) (uint, bool) {
	tableID, err := strconv.ParseUint(c.Param("tableId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Table ID must be numeric",
			},
		})
		return 0, false
	}
	return uint(tableID), true
}
