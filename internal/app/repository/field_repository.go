package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

type FieldRepository interface {
	Create(field *model.ProductField) error
	FindByID(tenantID, id uuid.UUID) (*model.ProductField, error)
	ListVisibleToDealer(tenantID uuid.UUID) ([]model.ProductField, error)
	ListFilterable(tenantID uuid.UUID) ([]model.ProductField, error)
	ListAutoSyncTenantIDs() ([]uuid.UUID, error)
}

type fieldRepository struct {
	db *gorm.DB
}

func NewFieldRepository(db *gorm.DB) FieldRepository {
	return &fieldRepository{db: db}
}

func (r *fieldRepository) Create(field *model.ProductField) error {
	logger.Debug("Creating product field in database", map[string]interface{}{
		"tenant_id":  field.TenantID,
		"section_id": field.SectionID,
		"name":       field.Name,
	})

	if err := r.db.Create(field).Error; err != nil {
		logger.Error("Failed to create product field in database", err, map[string]interface{}{
			"tenant_id": field.TenantID,
			"name":      field.Name,
		})
		return err
	}
	return nil
}

func (r *fieldRepository) FindByID(tenantID, id uuid.UUID) (*model.ProductField, error) {
	var field model.ProductField
	err := r.db.
		Where("tenant_id = ?", tenantID).
		First(&field, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *fieldRepository) ListVisibleToDealer(tenantID uuid.UUID) ([]model.ProductField, error) {
	var fields []model.ProductField
	err := r.db.
		Where("tenant_id = ? AND visible_to_dealer = ?", tenantID, true).
		Find(&fields).Error
	if err != nil {
		logger.Error("Failed to list dealer-visible fields", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}
	return fields, nil
}

func (r *fieldRepository) ListFilterable(tenantID uuid.UUID) ([]model.ProductField, error) {
	var fields []model.ProductField
	err := r.db.
		Where("tenant_id = ? AND filterable = ?", tenantID, true).
		Find(&fields).Error
	if err != nil {
		logger.Error("Failed to list filterable fields", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}
	return fields, nil
}

// ListAutoSyncTenantIDs returns the tenants owning at least one filterable
// field flagged for automatic filter synchronization.
func (r *fieldRepository) ListAutoSyncTenantIDs() ([]uuid.UUID, error) {
	var tenantIDs []uuid.UUID
	err := r.db.Model(&model.ProductField{}).
		Where("filterable = ? AND auto_sync_enabled = ?", true, true).
		Distinct().
		Pluck("tenant_id", &tenantIDs).Error
	if err != nil {
		logger.Error("Failed to list auto-sync tenants", err, nil)
		return nil, err
	}
	return tenantIDs, nil
}
