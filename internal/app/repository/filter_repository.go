package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

type FilterRepository interface {
	Create(filter *model.Filter) error
	FindByID(tenantID, id uuid.UUID) (*model.Filter, error)
	FindByName(tenantID uuid.UUID, name string) (*model.Filter, error)
	ListByTenant(tenantID uuid.UUID) ([]model.Filter, error)
	Paginate(tenantID uuid.UUID, page, pageSize int) ([]model.Filter, int64, error)
	Update(filter *model.Filter) error
	Delete(tenantID, id uuid.UUID) (bool, error)
}

type filterRepository struct {
	db *gorm.DB
}

func NewFilterRepository(db *gorm.DB) FilterRepository {
	return &filterRepository{db: db}
}

func (r *filterRepository) Create(filter *model.Filter) error {
	logger.Debug("Creating filter in database", map[string]interface{}{
		"tenant_id": filter.TenantID,
		"name":      filter.Name,
		"type":      filter.Type,
	})

	if err := r.db.Create(filter).Error; err != nil {
		logger.Error("Failed to create filter in database", err, map[string]interface{}{
			"tenant_id": filter.TenantID,
			"name":      filter.Name,
		})
		return err
	}
	return nil
}

func (r *filterRepository) FindByID(tenantID, id uuid.UUID) (*model.Filter, error) {
	var filter model.Filter
	err := r.db.
		Where("tenant_id = ?", tenantID).
		First(&filter, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &filter, nil
}

// FindByName matches the name case-insensitively and returns (nil, nil)
// when no filter carries it; the synchronizer treats that as "safe to
// create".
func (r *filterRepository) FindByName(tenantID uuid.UUID, name string) (*model.Filter, error) {
	var filter model.Filter
	err := r.db.
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		First(&filter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &filter, nil
}

func (r *filterRepository) ListByTenant(tenantID uuid.UUID) ([]model.Filter, error) {
	var filters []model.Filter
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&filters).Error
	if err != nil {
		logger.Error("Failed to list filters", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}
	return filters, nil
}

// Paginate returns the requested page plus the full tenant count.
// Page is 1-indexed.
func (r *filterRepository) Paginate(tenantID uuid.UUID, page, pageSize int) ([]model.Filter, int64, error) {
	query := r.db.Model(&model.Filter{}).Where("tenant_id = ?", tenantID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		logger.Error("Failed to count filters", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, 0, err
	}

	var filters []model.Filter
	err := query.
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&filters).Error
	if err != nil {
		logger.Error("Failed to paginate filters", err, map[string]interface{}{
			"tenant_id": tenantID,
			"page":      page,
			"page_size": pageSize,
		})
		return nil, 0, err
	}

	return filters, totalItems, nil
}

func (r *filterRepository) Update(filter *model.Filter) error {
	logger.Debug("Updating filter in database", map[string]interface{}{
		"filter_id": filter.ID,
		"name":      filter.Name,
	})

	if err := r.db.Save(filter).Error; err != nil {
		logger.Error("Failed to update filter in database", err, map[string]interface{}{
			"filter_id": filter.ID,
		})
		return err
	}
	return nil
}

func (r *filterRepository) Delete(tenantID, id uuid.UUID) (bool, error) {
	result := r.db.
		Where("tenant_id = ?", tenantID).
		Delete(&model.Filter{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete filter from database", result.Error, map[string]interface{}{
			"filter_id": id,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
