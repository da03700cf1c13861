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

// ProductRequest represents the request body for creating or editing a
// catalog product
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"omitempty,gte=0"`
	TaxRate     *float64 `json:"taxRate" binding:"omitempty,gte=0"`
	IsCombo     bool     `json:"isCombo"`
	SubCategory string   `json:"subCategory"`
	AreaID      *uint    `json:"areaId"`
}

// CreateProduct handles POST /api/v1/product
func CreateProduct(c *gin.Context) {
	var req ProductRequest
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

	product := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		IsCombo:     req.IsCombo,
		SubCategory: req.SubCategory,
		AreaID:      req.AreaID,
	}
	if req.TaxRate != nil {
		product.TaxRate = *req.TaxRate
	}

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_EXISTS",
					"message": "A product with this name already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	logAdminAction(c, "Product created")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// ListProducts handles GET /api/v1/product
func ListProducts(c *gin.Context) {
	db := config.GetDB()

	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// UpdateProduct handles PUT /api/v1/product/:productId
func UpdateProduct(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req ProductRequest
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
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		respondServiceError(c, services.ErrProductNotFound)
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.IsCombo = req.IsCombo
	product.SubCategory = req.SubCategory
	product.AreaID = req.AreaID
	if req.TaxRate != nil {
		product.TaxRate = *req.TaxRate
	}

	if err := db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	logAdminAction(c, "Product updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/product/:productId
func DeleteProduct(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	result := db.Delete(&models.Product{}, productID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		respondServiceError(c, services.ErrProductNotFound)
		return
	}

	logAdminAction(c, "Product deleted")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted",
	})
}

// productIDParam parses the :productId path parameter
func productIDParam(c *gin.Context) (uint, bool) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Product ID must be numeric",
			},
		})
		return 0, false
	}
	return uint(productID), true
}
