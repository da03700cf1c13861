package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/controllers"
	"github.com/bellavista-pos/bellavista-foh-api/middleware"
	"github.com/bellavista-pos/bellavista-foh-api/models"
	"github.com/bellavista-pos/bellavista-foh-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Bella Vista FOH API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Area{},
		&models.Product{},
		&models.Table{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.ComboLineItem{},
		&models.ComboChoiceItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	services.InitCatalogService()
	if _, err := services.InitReceiptService(); err != nil {
		log.Fatalf("Failed to initialize receipt archive: %v", err)
	}

	// Start the reservation expiry sweeper
	sweeper := services.NewReservationSweeper(time.Duration(cfg.SweepIntervalSeconds) * time.Second)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize Gin router
	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all application routes
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	cfg := config.GetConfig()

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Order lifecycle
		order := v1.Group("/order")
		{
			order.POST("", controllers.CreateOrder)
			order.GET("", controllers.ListOrders)
			order.GET("/table/:tableId", controllers.GetOrdersByTable)
			order.GET("/:orderNumber", controllers.GetOrder)
			order.PUT("/:orderNumber", controllers.UpdateOrder)
			order.PUT("/:orderNumber/totals", controllers.UpdateOrderTotals)
			order.DELETE("/:orderId", controllers.DeleteOrder)
		}

		// Table occupancy
		table := v1.Group("/table")
		{
			table.GET("", controllers.ListTables)
			table.GET("/disabled", controllers.ListDisabledTables)
			table.POST("/:tableId/reserve", controllers.ReserveTable)
			table.POST("/:tableId/cancel-reserve", controllers.CancelReserveTable)
			table.POST("/:tableId/open", controllers.OpenTable)
			table.PUT("/:tableId/toggle-open", controllers.ToggleOpenTable)
		}

		// Administrative CRUD, gated by Auth0 when configured
		admin := v1.Group("")
		if cfg != nil && cfg.Auth0Domain != "" {
			admin.Use(middleware.EnsureValidToken(cfg))
		}
		{
			admin.POST("/table", controllers.CreateTable)
			admin.PUT("/table/:tableId", controllers.UpdateTable)
			admin.DELETE("/table/:tableId", controllers.DeleteTable)

			admin.POST("/area", controllers.CreateArea)
			admin.GET("/area", controllers.ListAreas)
			admin.PUT("/area/:areaId", controllers.UpdateArea)
			admin.DELETE("/area/:areaId", controllers.DeleteArea)

			admin.POST("/product", controllers.CreateProduct)
			admin.GET("/product", controllers.ListProducts)
			admin.PUT("/product/:productId", controllers.UpdateProduct)
			admin.DELETE("/product/:productId", controllers.DeleteProduct)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bella Vista FOH API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
