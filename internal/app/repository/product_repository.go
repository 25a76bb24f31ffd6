package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(tenantID, id uuid.UUID) (*model.Product, error)
	ListByTenant(tenantID uuid.UUID) ([]model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"tenant_id": product.TenantID,
		"dealer_id": product.DealerID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"tenant_id": product.TenantID,
			"dealer_id": product.DealerID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id":  product.ID,
		"value_count": len(product.FieldValues),
	})
	return nil
}

func (r *productRepository) FindByID(tenantID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Preload("FieldValues").
		Where("tenant_id = ?", tenantID).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListByTenant(tenantID uuid.UUID) ([]model.Product, error) {
	logger.Debug("Listing products with values", map[string]interface{}{
		"tenant_id": tenantID,
	})

	var products []model.Product
	err := r.db.
		Preload("FieldValues").
		Where("tenant_id = ?", tenantID).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}

	logger.Debug("Products listed", map[string]interface{}{
		"tenant_id": tenantID,
		"count":     len(products),
	})
	return products, nil
}
