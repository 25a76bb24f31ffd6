package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

type SectionRepository interface {
	Create(section *model.ProductSection) error
	FindByID(tenantID, id uuid.UUID) (*model.ProductSection, error)
	ListByTenant(tenantID uuid.UUID) ([]model.ProductSection, error)
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *model.ProductSection) error {
	logger.Debug("Creating product section in database", map[string]interface{}{
		"tenant_id": section.TenantID,
		"name":      section.Name,
	})

	if err := r.db.Create(section).Error; err != nil {
		logger.Error("Failed to create product section in database", err, map[string]interface{}{
			"tenant_id": section.TenantID,
			"name":      section.Name,
		})
		return err
	}
	return nil
}

func (r *sectionRepository) FindByID(tenantID, id uuid.UUID) (*model.ProductSection, error) {
	var section model.ProductSection
	err := r.db.
		Preload("Fields").
		Where("tenant_id = ?", tenantID).
		First(&section, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) ListByTenant(tenantID uuid.UUID) ([]model.ProductSection, error) {
	logger.Debug("Listing product sections", map[string]interface{}{
		"tenant_id": tenantID,
	})

	var sections []model.ProductSection
	err := r.db.
		Preload("Fields").
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&sections).Error
	if err != nil {
		logger.Error("Failed to list product sections", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}

	logger.Debug("Product sections listed", map[string]interface{}{
		"tenant_id": tenantID,
		"count":     len(sections),
	})
	return sections, nil
}
