package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

type FeatureRepository interface {
	IsEnabled(tenantID uuid.UUID, feature string) (bool, error)
	SetFeature(tenantID uuid.UUID, feature string, enabled bool) error
}

type featureRepository struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) FeatureRepository {
	return &featureRepository{db: db}
}

// IsEnabled reports whether the feature is switched on for the tenant.
// A missing row means disabled, not an error.
func (r *featureRepository) IsEnabled(tenantID uuid.UUID, feature string) (bool, error) {
	var row model.TenantFeature
	err := r.db.
		Where("tenant_id = ? AND feature = ?", tenantID, feature).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to read tenant feature", err, map[string]interface{}{
			"tenant_id": tenantID,
			"feature":   feature,
		})
		return false, err
	}
	return row.Enabled, nil
}

func (r *featureRepository) SetFeature(tenantID uuid.UUID, feature string, enabled bool) error {
	var row model.TenantFeature
	err := r.db.
		Where("tenant_id = ? AND feature = ?", tenantID, feature).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = model.TenantFeature{
			TenantID: tenantID,
			Feature:  feature,
			Enabled:  enabled,
		}
		return r.db.Create(&row).Error
	}
	if err != nil {
		return err
	}

	row.Enabled = enabled
	return r.db.Save(&row).Error
}
