package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

// ErrNoValidFields is returned when none of the submitted field values
// survive the dealer-visibility check. Nothing is persisted.
var ErrNoValidFields = errors.New("no valid visible product fields were provided")

// ProductMatch is one product in a filtered result set, with its value map
// keyed by field name.
type ProductMatch struct {
	ProductID uuid.UUID         `json:"product_id"`
	DealerID  uuid.UUID         `json:"dealer_id"`
	Fields    map[string]string `json:"fields"`
}

type ProductService interface {
	// CreateProduct is the tenant-facing creation path; the caller's
	// feature check has already established the dealer's validity upstream.
	CreateProduct(tenantID, dealerID uuid.UUID, fieldValues map[string]string) (*model.Product, error)
	FilterProducts(tenantID uuid.UUID, criteria map[string]string) ([]ProductMatch, error)
}

type productService struct {
	db             *gorm.DB
	productRepo    repository.ProductRepository
	fieldRepo      repository.FieldRepository
	featureService FeatureService
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	fieldRepo repository.FieldRepository,
	featureService FeatureService,
) ProductService {
	return &productService{
		db:             db,
		productRepo:    productRepo,
		fieldRepo:      fieldRepo,
		featureService: featureService,
	}
}

func (s *productService) CreateProduct(tenantID, dealerID uuid.UUID, fieldValues map[string]string) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"tenant_id":       tenantID,
		"dealer_id":       dealerID,
		"submitted_count": len(fieldValues),
	})

	enabled, err := s.featureService.IsEnabled(tenantID, model.FeatureProducts)
	if err != nil {
		return nil, err
	}
	if !enabled {
		logger.Warn("Products feature not enabled for tenant", map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, ErrFeatureNotEnabled
	}

	return createProductWithValues(s.db, s.fieldRepo, tenantID, dealerID, fieldValues)
}

// createProductWithValues applies the dealer-visibility policy and persists
// the product with its surviving values in one transaction. Shared by the
// tenant-facing and dealer-facing creation paths.
func createProductWithValues(
	db *gorm.DB,
	fieldRepo repository.FieldRepository,
	tenantID, dealerID uuid.UUID,
	fieldValues map[string]string,
) (*model.Product, error) {
	visibleFields, err := fieldRepo.ListVisibleToDealer(tenantID)
	if err != nil {
		return nil, err
	}

	allowedNames := make(map[string]bool, len(visibleFields))
	for _, field := range visibleFields {
		allowedNames[strings.ToLower(field.Name)] = true
	}

	// Keys outside the dealer-visible schema are dropped silently, not
	// rejected.
	validValues := make(map[string]string)
	for name, value := range fieldValues {
		if allowedNames[strings.ToLower(name)] {
			validValues[name] = value
		}
	}

	if len(validValues) == 0 {
		logger.Warn("Product creation rejected: no valid visible fields supplied", map[string]interface{}{
			"tenant_id":       tenantID,
			"dealer_id":       dealerID,
			"submitted_count": len(fieldValues),
		})
		return nil, ErrNoValidFields
	}

	product := &model.Product{
		TenantID: tenantID,
		DealerID: dealerID,
	}
	for name, value := range validValues {
		product.FieldValues = append(product.FieldValues, model.ProductFieldValue{
			FieldName: name,
			Value:     value,
		})
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during product creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"tenant_id": tenantID,
				"dealer_id": dealerID,
			})
		}
	}()

	if err := tx.Create(product).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create product", err, map[string]interface{}{
			"tenant_id": tenantID,
			"dealer_id": dealerID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit product creation", err, map[string]interface{}{
			"tenant_id": tenantID,
			"dealer_id": dealerID,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id":  product.ID,
		"tenant_id":   tenantID,
		"dealer_id":   dealerID,
		"value_count": len(product.FieldValues),
	})
	return product, nil
}

// FilterProducts matches every product of the tenant against the criteria.
// A product matches when each criterion key is present in its value map and
// equal ignoring case; an empty criteria set matches everything.
func (s *productService) FilterProducts(tenantID uuid.UUID, criteria map[string]string) ([]ProductMatch, error) {
	logger.Debug("Filtering products", map[string]interface{}{
		"tenant_id":       tenantID,
		"criterion_count": len(criteria),
	})

	products, err := s.productRepo.ListByTenant(tenantID)
	if err != nil {
		logger.Error("Failed to load products for filtering", err, map[string]interface{}{
			"tenant_id": tenantID,
		})
		return nil, err
	}

	matches := make([]ProductMatch, 0, len(products))
	for _, product := range products {
		values := make(map[string]string, len(product.FieldValues))
		lowered := make(map[string]string, len(product.FieldValues))
		for _, fv := range product.FieldValues {
			values[fv.FieldName] = fv.Value
			lowered[strings.ToLower(fv.FieldName)] = fv.Value
		}

		matchesAll := true
		for name, want := range criteria {
			got, ok := lowered[strings.ToLower(name)]
			if !ok || !strings.EqualFold(got, want) {
				matchesAll = false
				break
			}
		}

		if matchesAll {
			matches = append(matches, ProductMatch{
				ProductID: product.ID,
				DealerID:  product.DealerID,
				Fields:    values,
			})
		}
	}

	logger.Info("Products filtered", map[string]interface{}{
		"tenant_id":     tenantID,
		"scanned_count": len(products),
		"match_count":   len(matches),
	})
	return matches, nil
}
