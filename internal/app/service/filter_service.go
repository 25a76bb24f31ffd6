package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

var (
	ErrInvalidFilterType   = errors.New("invalid filter type")
	ErrInvalidFilterValues = errors.New("invalid filter values")
	ErrInvalidFilterStatus = errors.New("invalid filter status")
)

// FilterSpec carries the caller-supplied attributes of a filter.
type FilterSpec struct {
	Name        string
	Type        model.FilterType
	IsDefault   bool
	Description string
	Values      []string
	Status      model.FilterStatus
}

// PaginatedFilters is one page of a tenant's filters. TotalItems is the
// full tenant count, not the page length.
type PaginatedFilters struct {
	Items      []model.Filter `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalItems int64          `json:"total_items"`
}

type FilterService interface {
	List(tenantID uuid.UUID) ([]model.Filter, error)
	GetByID(tenantID, id uuid.UUID) (*model.Filter, error)
	Paginate(tenantID uuid.UUID, page, pageSize int) (*PaginatedFilters, error)
	Create(tenantID uuid.UUID, spec FilterSpec) (*model.Filter, error)
	Update(tenantID, id uuid.UUID, spec FilterSpec) (*model.Filter, error)
	Delete(tenantID, id uuid.UUID) (bool, error)
	SyncFromFields(tenantID uuid.UUID) (int, error)
}

type filterService struct {
	db             *gorm.DB
	filterRepo     repository.FilterRepository
	fieldRepo      repository.FieldRepository
	featureService FeatureService
}

func NewFilterService(
	db *gorm.DB,
	filterRepo repository.FilterRepository,
	fieldRepo repository.FieldRepository,
	featureService FeatureService,
) FilterService {
	return &filterService{
		db:             db,
		filterRepo:     filterRepo,
		fieldRepo:      fieldRepo,
		featureService: featureService,
	}
}

// filterValidators maps each filter type to its value rule. Each rule is a
// pure predicate over the ordered value list.
var filterValidators = map[model.FilterType]func(values []string) error{
	model.FilterTypeDropdown:    requireValues("dropdown"),
	model.FilterTypeMultiSelect: requireValues("multiselect"),
	model.FilterTypeToggle: func(values []string) error {
		if len(values) != 2 {
			return fmt.Errorf("%w: toggle filters must have exactly two values (e.g. On/Off)", ErrInvalidFilterValues)
		}
		return nil
	},
	model.FilterTypeSlider: func(values []string) error {
		for _, v := range values {
			if _, err := strconv.Atoi(v); err != nil {
				return fmt.Errorf("%w: slider values must be numeric (e.g. 10,20,30)", ErrInvalidFilterValues)
			}
		}
		return nil
	},
	model.FilterTypeRangeSlider: func(values []string) error {
		for _, v := range values {
			if !strings.Contains(v, "-") {
				return fmt.Errorf("%w: range slider values must be in 'min-max' format (e.g. 10-50)", ErrInvalidFilterValues)
			}
		}
		return nil
	},
	model.FilterTypeText: func(values []string) error {
		if len(values) > 0 {
			return fmt.Errorf("%w: text filters must not have predefined values", ErrInvalidFilterValues)
		}
		return nil
	},
}

func requireValues(typeName string) func(values []string) error {
	return func(values []string) error {
		if len(values) == 0 {
			return fmt.Errorf("%w: %s filters must have at least one selectable value", ErrInvalidFilterValues, typeName)
		}
		return nil
	}
}

// validateSpec runs the type-keyed rule for the spec. Unknown types are
// rejected before any value rule runs. An empty status is allowed and
// defaults to active on create.
func validateSpec(spec FilterSpec) error {
	validate, ok := filterValidators[spec.Type]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFilterType, spec.Type)
	}
	switch spec.Status {
	case "", model.FilterStatusActive, model.FilterStatusArchived:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFilterStatus, spec.Status)
	}
	return validate(spec.Values)
}

func (s *filterService) requireFiltersFeature(tenantID uuid.UUID) error {
	enabled, err := s.featureService.IsEnabled(tenantID, model.FeatureFilters)
	if err != nil {
		return err
	}
	if !enabled {
		logger.Warn("Filters feature not enabled for tenant", map[string]interface{}{
			"tenant_id": tenantID,
		})
		return ErrFeatureNotEnabled
	}
	return nil
}

func (s *filterService) List(tenantID uuid.UUID) ([]model.Filter, error) {
	logger.Debug("Listing filters", map[string]interface{}{
		"tenant_id": tenantID,
	})

	if err := s.requireFiltersFeature(tenantID); err != nil {
		return nil, err
	}

	filters, err := s.filterRepo.ListByTenant(tenantID)
	if err != nil {
		logger.Error("Failed to list filters", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}

	logger.Info("Filters listed", map[string]interface{}{
		"tenant_id": tenantID,
		"count":     len(filters),
	})
	return filters, nil
}

// GetByID returns nil for a filter missing from the tenant's scope; absence
// is not an error for this read.
func (s *filterService) GetByID(tenantID, id uuid.UUID) (*model.Filter, error) {
	filter, err := s.filterRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("Failed to fetch filter", err, map[string]interface{}{
			"filter_id": id,
			"tenant_id": tenantID,
		})
		return nil, err
	}
	return filter, nil
}

func (s *filterService) Paginate(tenantID uuid.UUID, page, pageSize int) (*PaginatedFilters, error) {
	logger.Debug("Paginating filters", map[string]interface{}{
		"tenant_id": tenantID,
		"page":      page,
		"page_size": pageSize,
	})

	if err := s.requireFiltersFeature(tenantID); err != nil {
		return nil, err
	}

	items, totalItems, err := s.filterRepo.Paginate(tenantID, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &PaginatedFilters{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
	}, nil
}

func (s *filterService) Create(tenantID uuid.UUID, spec FilterSpec) (*model.Filter, error) {
	logger.Info("Creating filter", map[string]interface{}{
		"tenant_id": tenantID,
		"name":      spec.Name,
		"type":      spec.Type,
	})

	if err := s.requireFiltersFeature(tenantID); err != nil {
		return nil, err
	}

	if err := validateSpec(spec); err != nil {
		logger.Warn("Filter creation rejected by validation", map[string]interface{}{
			"tenant_id": tenantID,
			"name":      spec.Name,
			"type":      spec.Type,
			"reason":    err.Error(),
		})
		return nil, err
	}

	status := spec.Status
	if status == "" {
		status = model.FilterStatusActive
	}

	filter := &model.Filter{
		TenantID:    tenantID,
		Name:        spec.Name,
		Type:        spec.Type,
		IsDefault:   spec.IsDefault,
		Description: spec.Description,
		Values:      spec.Values,
		Status:      status,
	}

	if err := s.filterRepo.Create(filter); err != nil {
		return nil, err
	}

	logger.Info("Filter created successfully", map[string]interface{}{
		"filter_id": filter.ID,
		"tenant_id": tenantID,
	})
	return filter, nil
}

// Update validates, then replaces the filter's attributes. A missing filter
// yields (nil, nil): a not-found signal rather than an error.
func (s *filterService) Update(tenantID, id uuid.UUID, spec FilterSpec) (*model.Filter, error) {
	logger.Info("Updating filter", map[string]interface{}{
		"filter_id": id,
		"tenant_id": tenantID,
		"name":      spec.Name,
	})

	if err := s.requireFiltersFeature(tenantID); err != nil {
		return nil, err
	}

	filter, err := s.filterRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: filter not found", map[string]interface{}{
				"filter_id": id,
				"tenant_id": tenantID,
			})
			return nil, nil
		}
		return nil, err
	}

	if err := validateSpec(spec); err != nil {
		logger.Warn("Filter update rejected by validation", map[string]interface{}{
			"filter_id": id,
			"reason":    err.Error(),
		})
		return nil, err
	}

	filter.Name = spec.Name
	filter.Type = spec.Type
	filter.IsDefault = spec.IsDefault
	filter.Description = spec.Description
	filter.Values = spec.Values
	if spec.Status != "" {
		filter.Status = spec.Status
	}

	if err := s.filterRepo.Update(filter); err != nil {
		return nil, err
	}

	logger.Info("Filter updated successfully", map[string]interface{}{
		"filter_id": id,
	})
	return filter, nil
}

func (s *filterService) Delete(tenantID, id uuid.UUID) (bool, error) {
	logger.Info("Deleting filter", map[string]interface{}{
		"filter_id": id,
		"tenant_id": tenantID,
	})

	if err := s.requireFiltersFeature(tenantID); err != nil {
		return false, err
	}

	deleted, err := s.filterRepo.Delete(tenantID, id)
	if err != nil {
		return false, err
	}

	if deleted {
		logger.Info("Filter deleted successfully", map[string]interface{}{
			"filter_id": id,
		})
	} else {
		logger.Warn("Cannot delete: filter not found", map[string]interface{}{
			"filter_id": id,
			"tenant_id": tenantID,
		})
	}
	return deleted, nil
}

// SyncFromFields derives a filter from every filterable field that has no
// same-named filter yet. Existing filters are skipped untouched; all new
// filters of one call are persisted together. Returns how many were
// created.
//
// The existence check and the insert are not combined atomically, so two
// concurrent syncs for the same tenant can both create a filter for the
// same field name.
func (s *filterService) SyncFromFields(tenantID uuid.UUID) (int, error) {
	logger.Info("Syncing filters from product fields", map[string]interface{}{
		"tenant_id": tenantID,
	})

	fields, err := s.fieldRepo.ListFilterable(tenantID)
	if err != nil {
		return 0, err
	}

	var pending []*model.Filter
	for _, field := range fields {
		existing, err := s.filterRepo.FindByName(tenantID, field.Name)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			logger.Debug("Filter already synced, skipping", map[string]interface{}{
				"tenant_id": tenantID,
				"name":      field.Name,
			})
			continue
		}

		values := field.Options
		if values == nil {
			values = []string{}
		}

		pending = append(pending, &model.Filter{
			TenantID:    tenantID,
			Name:        field.Name,
			Type:        model.FilterTypeDropdown,
			IsDefault:   false,
			Description: fmt.Sprintf("Auto-synced filter for field: %s", field.Name),
			Values:      values,
			Status:      model.FilterStatusActive,
			UsageCount:  0,
		})
	}

	if len(pending) == 0 {
		logger.Info("Filter sync complete: nothing to create", map[string]interface{}{
			"tenant_id":   tenantID,
			"field_count": len(fields),
		})
		return 0, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, filter := range pending {
			if err := tx.Create(filter).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to persist synced filters", err, map[string]interface{}{
			"tenant_id": tenantID,
			"pending":   len(pending),
		})
		return 0, err
	}

	logger.Info("Filter sync complete", map[string]interface{}{
		"tenant_id":     tenantID,
		"field_count":   len(fields),
		"created_count": len(pending),
	})
	return len(pending), nil
}
