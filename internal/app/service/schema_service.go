package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

var ErrSectionNotFound = errors.New("section not found")

// FieldSpec carries every mutable attribute of a product field. Updates
// replace all of them wholesale, options and type included.
type FieldSpec struct {
	SectionID       uuid.UUID
	Name            string
	FieldType       model.FieldType
	VisibleToDealer bool
	Required        bool
	AutoSyncEnabled bool
	Filterable      bool
	IsVariantOption bool
	Visible         bool
	Options         []string
}

type SchemaService interface {
	CreateSection(tenantID uuid.UUID, name string) (*model.ProductSection, error)
	UpdateSection(tenantID, id uuid.UUID, name string) (bool, error)
	DeleteSection(tenantID, id uuid.UUID) (bool, error)
	CreateField(tenantID uuid.UUID, spec FieldSpec) (*model.ProductField, error)
	UpdateField(tenantID, id uuid.UUID, spec FieldSpec) (bool, error)
	DeleteField(tenantID, id uuid.UUID) (bool, error)
	ListSections(tenantID uuid.UUID, dealerVisibleOnly bool) ([]model.ProductSection, error)
}

type schemaService struct {
	db             *gorm.DB
	sectionRepo    repository.SectionRepository
	fieldRepo      repository.FieldRepository
	featureService FeatureService
}

func NewSchemaService(
	db *gorm.DB,
	sectionRepo repository.SectionRepository,
	fieldRepo repository.FieldRepository,
	featureService FeatureService,
) SchemaService {
	return &schemaService{
		db:             db,
		sectionRepo:    sectionRepo,
		fieldRepo:      fieldRepo,
		featureService: featureService,
	}
}

func (s *schemaService) requireProductsFeature(tenantID uuid.UUID) error {
	enabled, err := s.featureService.IsEnabled(tenantID, model.FeatureProducts)
	if err != nil {
		return err
	}
	if !enabled {
		logger.Warn("Products feature not enabled for tenant", map[string]interface{}{
			"tenant_id": tenantID,
		})
		return ErrFeatureNotEnabled
	}
	return nil
}

// CreateSection registers a new schema section. Duplicate names are
// permitted.
func (s *schemaService) CreateSection(tenantID uuid.UUID, name string) (*model.ProductSection, error) {
	logger.Info("Creating product section", map[string]interface{}{
		"tenant_id": tenantID,
		"name":      name,
	})

	if err := s.requireProductsFeature(tenantID); err != nil {
		return nil, err
	}

	section := &model.ProductSection{
		TenantID: tenantID,
		Name:     name,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during section creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"tenant_id": tenantID,
			})
		}
	}()

	if err := tx.Create(section).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create product section", err, map[string]interface{}{
			"tenant_id": tenantID,
			"name":      name,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit section creation", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}

	logger.Info("Product section created successfully", map[string]interface{}{
		"section_id": section.ID,
		"tenant_id":  tenantID,
	})
	return section, nil
}

// UpdateSection renames a section. Returns false when the section does not
// exist in the tenant's scope.
func (s *schemaService) UpdateSection(tenantID, id uuid.UUID, name string) (bool, error) {
	logger.Info("Updating product section", map[string]interface{}{
		"section_id": id,
		"tenant_id":  tenantID,
		"name":       name,
	})

	if err := s.requireProductsFeature(tenantID); err != nil {
		return false, err
	}

	section, err := s.sectionRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: section not found", map[string]interface{}{
				"section_id": id,
				"tenant_id":  tenantID,
			})
			return false, nil
		}
		return false, err
	}

	section.Name = name

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during section update, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"section_id": id,
			})
		}
	}()

	if err := tx.Save(section).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update product section", err, map[string]interface{}{
			"section_id": id,
		})
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit section update", err, map[string]interface{}{
			"section_id": id,
		})
		return false, err
	}

	logger.Info("Product section updated successfully", map[string]interface{}{
		"section_id": id,
	})
	return true, nil
}

// DeleteSection removes an empty section. A section that is missing or
// still owns fields is left untouched and reported as not deleted; neither
// case is an error.
func (s *schemaService) DeleteSection(tenantID, id uuid.UUID) (bool, error) {
	logger.Info("Deleting product section", map[string]interface{}{
		"section_id": id,
		"tenant_id":  tenantID,
	})

	if err := s.requireProductsFeature(tenantID); err != nil {
		return false, err
	}

	section, err := s.sectionRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot delete: section not found", map[string]interface{}{
				"section_id": id,
				"tenant_id":  tenantID,
			})
			return false, nil
		}
		return false, err
	}

	if len(section.Fields) > 0 {
		logger.Warn("Section delete skipped: section still owns fields", map[string]interface{}{
			"section_id":  id,
			"field_count": len(section.Fields),
		})
		return false, nil
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during section deletion, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"section_id": id,
			})
		}
	}()

	if err := tx.Delete(&model.ProductSection{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete product section", err, map[string]interface{}{
			"section_id": id,
		})
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit section deletion", err, map[string]interface{}{
			"section_id": id,
		})
		return false, err
	}

	logger.Info("Product section deleted successfully", map[string]interface{}{
		"section_id": id,
	})
	return true, nil
}

func (s *schemaService) CreateField(tenantID uuid.UUID, spec FieldSpec) (*model.ProductField, error) {
	logger.Info("Creating product field", map[string]interface{}{
		"tenant_id":  tenantID,
		"section_id": spec.SectionID,
		"name":       spec.Name,
		"field_type": spec.FieldType,
	})

	if err := s.requireProductsFeature(tenantID); err != nil {
		return nil, err
	}

	if _, err := s.sectionRepo.FindByID(tenantID, spec.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create field: section not found", map[string]interface{}{
				"tenant_id":  tenantID,
				"section_id": spec.SectionID,
			})
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	field := &model.ProductField{
		TenantID:        tenantID,
		SectionID:       spec.SectionID,
		Name:            spec.Name,
		FieldType:       spec.FieldType,
		VisibleToDealer: spec.VisibleToDealer,
		Required:        spec.Required,
		AutoSyncEnabled: spec.AutoSyncEnabled,
		Filterable:      spec.Filterable,
		IsVariantOption: spec.IsVariantOption,
		Visible:         spec.Visible,
		Options:         spec.Options,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during field creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"tenant_id": tenantID,
			})
		}
	}()

	if err := tx.Create(field).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create product field", err, map[string]interface{}{
			"tenant_id": tenantID,
			"name":      spec.Name,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit field creation", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}

	logger.Info("Product field created successfully", map[string]interface{}{
		"field_id":  field.ID,
		"tenant_id": tenantID,
	})
	return field, nil
}

// UpdateField replaces every mutable attribute of the field with the spec,
// options and field type included. Returns false when the field is missing.
func (s *schemaService) UpdateField(tenantID, id uuid.UUID, spec FieldSpec) (bool, error) {
	logger.Info("Updating product field", map[string]interface{}{
		"field_id":  id,
		"tenant_id": tenantID,
		"name":      spec.Name,
	})

	if err := s.requireProductsFeature(tenantID); err != nil {
		return false, err
	}

	field, err := s.fieldRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: field not found", map[string]interface{}{
				"field_id":  id,
				"tenant_id": tenantID,
			})
			return false, nil
		}
		return false, err
	}

	field.Name = spec.Name
	field.SectionID = spec.SectionID
	field.FieldType = spec.FieldType
	field.VisibleToDealer = spec.VisibleToDealer
	field.Required = spec.Required
	field.AutoSyncEnabled = spec.AutoSyncEnabled
	field.Filterable = spec.Filterable
	field.IsVariantOption = spec.IsVariantOption
	field.Visible = spec.Visible
	field.Options = spec.Options

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during field update, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"field_id": id,
			})
		}
	}()

	if err := tx.Save(field).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update product field", err, map[string]interface{}{
			"field_id": id,
		})
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit field update", err, map[string]interface{}{
			"field_id": id,
		})
		return false, err
	}

	logger.Info("Product field updated successfully", map[string]interface{}{
		"field_id": id,
	})
	return true, nil
}

// DeleteField removes a field definition. Existing product values that
// reference the field's name stay in place and simply go dormant.
func (s *schemaService) DeleteField(tenantID, id uuid.UUID) (bool, error) {
	logger.Info("Deleting product field", map[string]interface{}{
		"field_id":  id,
		"tenant_id": tenantID,
	})

	if err := s.requireProductsFeature(tenantID); err != nil {
		return false, err
	}

	if _, err := s.fieldRepo.FindByID(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot delete: field not found", map[string]interface{}{
				"field_id":  id,
				"tenant_id": tenantID,
			})
			return false, nil
		}
		return false, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during field deletion, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"field_id": id,
			})
		}
	}()

	if err := tx.Delete(&model.ProductField{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete product field", err, map[string]interface{}{
			"field_id": id,
		})
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit field deletion", err, map[string]interface{}{
			"field_id": id,
		})
		return false, err
	}

	logger.Info("Product field deleted successfully", map[string]interface{}{
		"field_id": id,
	})
	return true, nil
}

// ListSections returns the tenant's schema. With dealerVisibleOnly each
// section's field list is narrowed to dealer-visible fields; sections whose
// fields are all hidden are still returned, just empty.
func (s *schemaService) ListSections(tenantID uuid.UUID, dealerVisibleOnly bool) ([]model.ProductSection, error) {
	logger.Debug("Listing schema sections", map[string]interface{}{
		"tenant_id":           tenantID,
		"dealer_visible_only": dealerVisibleOnly,
	})

	sections, err := s.sectionRepo.ListByTenant(tenantID)
	if err != nil {
		logger.Error("Failed to list schema sections", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}

	if dealerVisibleOnly {
		for i := range sections {
			visible := make([]model.ProductField, 0, len(sections[i].Fields))
			for _, field := range sections[i].Fields {
				if field.VisibleToDealer {
					visible = append(visible, field)
				}
			}
			sections[i].Fields = visible
		}
	}

	logger.Info("Schema sections listed", map[string]interface{}{
		"tenant_id": tenantID,
		"count":     len(sections),
	})
	return sections, nil
}
