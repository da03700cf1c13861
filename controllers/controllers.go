package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bellavista-pos/bellavista-foh-api/middleware"
	"github.com/bellavista-pos/bellavista-foh-api/services"
)

// logAdminAction records the authenticated actor behind a catalog or
// floor-plan mutation. When the Auth0 gate is not configured there is no
// actor in the context and nothing is logged.
func logAdminAction(c *gin.Context, action string) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return
	}
	log.Printf("%s by %s", action, userID)
}

// respondServiceError translates a service-layer error into the standard
// error envelope
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": ve.Error(),
			},
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
	case errors.Is(err, services.ErrTableNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TABLE_NOT_FOUND",
				"message": "Table not found",
			},
		})
	case errors.Is(err, services.ErrAreaNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AREA_NOT_FOUND",
				"message": "Area not found",
			},
		})
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
	case errors.Is(err, services.ErrTableAlreadyReserved):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TABLE_ALREADY_RESERVED",
				"message": "Table is already reserved",
			},
		})
	case errors.Is(err, services.ErrTableOccupied):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TABLE_OCCUPIED",
				"message": "Table is currently seated",
			},
		})
	case errors.Is(err, services.ErrOrderCompleted):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_COMPLETED",
				"message": "Order has been settled and can no longer be modified",
			},
		})
	case errors.Is(err, services.ErrDuplicateOrderNumber):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_ORDER_NUMBER",
				"message": "Generated order number already exists, please retry",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Operation failed",
			},
		})
	}
}
