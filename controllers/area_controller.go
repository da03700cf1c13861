package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
	"github.com/bellavista-pos/bellavista-foh-api/services"
)

// AreaRequest represents the request body for creating or editing an area
type AreaRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CreateArea handles POST /api/v1/area
func CreateArea(c *gin.Context) {
	var req AreaRequest
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

	area := models.Area{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}

	db := config.GetDB()
	if err := db.Create(&area).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "AREA_EXISTS",
					"message": "An area with this name already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create area",
			},
		})
		return
	}

	logAdminAction(c, "Area created")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    area,
	})
}

// ListAreas handles GET /api/v1/area
func ListAreas(c *gin.Context) {
	db := config.GetDB()

	var areas []models.Area
	if err := db.Order("id").Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list areas",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    areas,
	})
}

// UpdateArea handles PUT /api/v1/area/:areaId - name/description/category
// edits only
func UpdateArea(c *gin.Context) {
	areaID, err := strconv.ParseUint(c.Param("areaId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Area ID must be numeric",
			},
		})
		return
	}

	var req AreaRequest
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
	var area models.Area
	if err := db.First(&area, areaID).Error; err != nil {
		respondServiceError(c, services.ErrAreaNotFound)
		return
	}

	area.Name = req.Name
	area.Description = req.Description
	area.Category = req.Category

	if err := db.Save(&area).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update area",
			},
		})
		return
	}

	logAdminAction(c, "Area updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    area,
	})
}

// DeleteArea handles DELETE /api/v1/area/:areaId
func DeleteArea(c *gin.Context) {
	areaID, err := strconv.ParseUint(c.Param("areaId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Area ID must be numeric",
			},
		})
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Area{}, areaID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete area",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		respondServiceError(c, services.ErrAreaNotFound)
		return
	}

	logAdminAction(c, "Area deleted")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Area deleted",
	})
}
