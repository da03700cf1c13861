package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
)

// CatalogService resolves product configuration for order pricing
type CatalogService interface {
	TaxResolver
}

// DBCatalogService implements CatalogService over the products table
type DBCatalogService struct{}

var catalogServiceInstance CatalogService

// InitCatalogService initializes the database-backed catalog service
func InitCatalogService() CatalogService {
	catalogServiceInstance = &DBCatalogService{}
	return catalogServiceInstance
}

// GetCatalogService returns the initialized catalog service instance
func GetCatalogService() CatalogService {
	if catalogServiceInstance == nil {
		catalogServiceInstance = &DBCatalogService{}
	}
	return catalogServiceInstance
}

// SetCatalogService sets the catalog service instance (primarily for testing)
func SetCatalogService(service CatalogService) {
	catalogServiceInstance = service
}

// TaxRateFor looks up the configured tax rate for a product by name.
// Returns false when the product is not in the catalog; pricing then
// defaults the rate to 0 rather than trusting client input.
func (s *DBCatalogService) TaxRateFor(name string) (float64, bool) {
	db := config.GetDB()

	var product models.Product
	if err := db.Where("name = ?", name).First(&product).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("catalog lookup failed for %q: %v", name, err)
		}
		return 0, false
	}

	return product.TaxRate, true
}
