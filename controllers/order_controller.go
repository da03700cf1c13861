package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bellavista-pos/bellavista-foh-api/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	TableID    *uint                   `json:"tableId"`
	OrderItems []services.RawOrderItem `json:"orderItems"`
	ComboItems []services.RawComboItem `json:"comboItems"`
}

// UpdateOrderRequest represents the request body for replacing an order's
// item lists
type UpdateOrderRequest struct {
	OrderItems []services.RawOrderItem `json:"orderItems"`
	ComboItems []services.RawComboItem `json:"comboItems"`
}

// UpdateOrderTotalsRequest represents the settlement request body
type UpdateOrderTotalsRequest struct {
	Subtotal  *float64 `json:"subtotal" binding:"required"`
	TaxAmount *float64 `json:"taxAmount" binding:"required"`
}

// CreateOrder handles POST /api/v1/order - creates a new order with
// computed totals
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	order, err := services.CreateOrder(req.TableID, req.OrderItems, req.ComboItems)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"order_number": order.OrderNumber,
			"subtotal":     services.Round2(order.Subtotal),
			"tax_total":    services.Round2(order.TaxTotal),
			"order_total":  services.Round2(order.OrderTotal),
			"order":        order,
		},
	})
}

// UpdateOrder handles PUT /api/v1/order/:orderNumber - replaces the item
// lists in full and recomputes totals
func UpdateOrder(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	var req UpdateOrderRequest
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

	order, err := services.UpdateOrderItems(orderNumber, req.OrderItems, req.ComboItems)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderTotals handles PUT /api/v1/order/:orderNumber/totals - the
// settlement path. The submitted totals are verified against the order's
// own items and the order is marked completed.
func UpdateOrderTotals(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	var req UpdateOrderTotalsRequest
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

	order, err := services.SettleOrder(orderNumber, *req.Subtotal, *req.TaxAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/order - returns all orders with their
// owning table's display name
func ListOrders(c *gin.Context) {
	orders, err := services.ListOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/order/:orderNumber
func GetOrder(c *gin.Context) {
	order, err := services.GetOrder(c.Param("orderNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrdersByTable handles GET /api/v1/order/table/:tableId
func GetOrdersByTable(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("tableId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Table ID must be numeric",
			},
		})
		return
	}

	orders, err := services.GetOrdersByTable(uint(tableID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// DeleteOrder handles DELETE /api/v1/order/:orderId - hard deletion
func DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be numeric",
			},
		})
		return
	}

	if err := services.DeleteOrder(uint(orderID)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted",
	})
}
