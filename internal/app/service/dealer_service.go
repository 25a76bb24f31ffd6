package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/pkg/logger"
)

var ErrDealerNotFound = errors.New("dealer not found")

// DealerSpec carries the business profile submitted at registration.
type DealerSpec struct {
	DealerName     string
	BusinessName   string
	BusinessNumber string
	BusinessEmail  string
	ContactEmail   string
	PhoneNumber    string
	Country        string
	State          string
	City           string
	Timezone       string
}

type DealerService interface {
	CreateDealer(tenantID uuid.UUID, spec DealerSpec) (*model.Dealer, error)
	GetVirtualNumber(dealerID uuid.UUID) (string, error)
	// CreateProductForDealer is the dealer-facing creation path: the dealer
	// is re-validated and the acting tenant is taken from the dealer row.
	CreateProductForDealer(dealerID uuid.UUID, fieldValues map[string]string) (*model.Product, error)
}

type dealerService struct {
	db         *gorm.DB
	dealerRepo repository.DealerRepository
	fieldRepo  repository.FieldRepository
}

func NewDealerService(
	db *gorm.DB,
	dealerRepo repository.DealerRepository,
	fieldRepo repository.FieldRepository,
) DealerService {
	return &dealerService{
		db:         db,
		dealerRepo: dealerRepo,
		fieldRepo:  fieldRepo,
	}
}

// generateVirtualNumber derives a contact number from the registration
// instant: "VN" plus ten digits of the nanosecond clock.
func generateVirtualNumber() string {
	digits := fmt.Sprintf("%d", time.Now().UnixNano())
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return "VN" + digits
}

func (s *dealerService) CreateDealer(tenantID uuid.UUID, spec DealerSpec) (*model.Dealer, error) {
	logger.Info("Creating dealer business profile", map[string]interface{}{
		"tenant_id":   tenantID,
		"dealer_name": spec.DealerName,
	})

	dealer := &model.Dealer{
		TenantID:       tenantID,
		DealerName:     spec.DealerName,
		BusinessName:   spec.BusinessName,
		BusinessNumber: spec.BusinessNumber,
		BusinessEmail:  spec.BusinessEmail,
		ContactEmail:   spec.ContactEmail,
		PhoneNumber:    spec.PhoneNumber,
		Country:        spec.Country,
		State:          spec.State,
		City:           spec.City,
		Timezone:       spec.Timezone,
		VirtualNumber:  generateVirtualNumber(),
	}

	if err := s.dealerRepo.Create(dealer); err != nil {
		logger.Error("Failed to create dealer", err, map[string]interface{}{
			"tenant_id":   tenantID,
			"dealer_name": spec.DealerName,
		})
		return nil, err
	}

	logger.Info("Dealer created successfully", map[string]interface{}{
		"dealer_id":      dealer.ID,
		"tenant_id":      tenantID,
		"virtual_number": dealer.VirtualNumber,
	})
	return dealer, nil
}

func (s *dealerService) GetVirtualNumber(dealerID uuid.UUID) (string, error) {
	dealer, err := s.dealerRepo.FindByID(dealerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Dealer not found for virtual number lookup", map[string]interface{}{
				"dealer_id": dealerID,
			})
			return "", ErrDealerNotFound
		}
		logger.Error("Failed to fetch dealer for virtual number lookup", err, map[string]interface{}{
			"dealer_id": dealerID,
		})
		return "", err
	}
	return dealer.VirtualNumber, nil
}

func (s *dealerService) CreateProductForDealer(dealerID uuid.UUID, fieldValues map[string]string) (*model.Product, error) {
	logger.Info("Creating product for dealer", map[string]interface{}{
		"dealer_id":       dealerID,
		"submitted_count": len(fieldValues),
	})

	dealer, err := s.dealerRepo.FindByID(dealerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create product: dealer not found", map[string]interface{}{
				"dealer_id": dealerID,
			})
			return nil, ErrDealerNotFound
		}
		logger.Error("Failed to resolve dealer", err, map[string]interface{}{
			"dealer_id": dealerID,
		})
		return nil, err
	}

	return createProductWithValues(s.db, s.fieldRepo, dealer.TenantID, dealer.ID, fieldValues)
}
