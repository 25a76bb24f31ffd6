package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

type DealerRepository interface {
	Create(dealer *model.Dealer) error
	// FindByID is not tenant-scoped: the dealer row itself resolves the
	// tenant for the dealer-facing product path.
	FindByID(id uuid.UUID) (*model.Dealer, error)
	ListByTenant(tenantID uuid.UUID) ([]model.Dealer, error)
}

type dealerRepository struct {
	db *gorm.DB
}

func NewDealerRepository(db *gorm.DB) DealerRepository {
	return &dealerRepository{db: db}
}

func (r *dealerRepository) Create(dealer *model.Dealer) error {
	logger.Debug("Creating dealer in database", map[string]interface{}{
		"tenant_id":   dealer.TenantID,
		"dealer_name": dealer.DealerName,
	})

	if err := r.db.Create(dealer).Error; err != nil {
		logger.Error("Failed to create dealer in database", err, map[string]interface{}{
			"tenant_id":   dealer.TenantID,
			"dealer_name": dealer.DealerName,
		})
		return err
	}

	logger.Debug("Dealer created in database", map[string]interface{}{
		"dealer_id": dealer.ID,
	})
	return nil
}

func (r *dealerRepository) FindByID(id uuid.UUID) (*model.Dealer, error) {
	var dealer model.Dealer
	if err := r.db.First(&dealer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dealer, nil
}

func (r *dealerRepository) ListByTenant(tenantID uuid.UUID) ([]model.Dealer, error) {
	var dealers []model.Dealer
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&dealers).Error
	if err != nil {
		logger.Error("Failed to list dealers", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}
	return dealers, nil
}
