package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealerhub/dealerhub-backend/internal/app/service"
	apperrors "github.com/dealerhub/dealerhub-backend/internal/errors"
	"github.com/dealerhub/dealerhub-backend/internal/middleware"
)

type DealerController struct {
	dealerService service.DealerService
}

func NewDealerController(dealerService service.DealerService) *DealerController {
	return &DealerController{dealerService: dealerService}
}

type DealerRequest struct {
	DealerName     string `json:"dealer_name" binding:"required"`
	BusinessName   string `json:"business_name" binding:"required"`
	BusinessNumber string `json:"business_number"`
	BusinessEmail  string `json:"business_email"`
	ContactEmail   string `json:"contact_email"`
	PhoneNumber    string `json:"phone_number"`
	Country        string `json:"country"`
	State          string `json:"state"`
	City           string `json:"city"`
	Timezone       string `json:"timezone"`
}

// CreateDealer registers a dealer's business profile and assigns its
// virtual contact number.
func (ctrl *DealerController) CreateDealer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	var req DealerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid dealer registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "dealer_name and business_name are required")
		return
	}

	dealer, err := ctrl.dealerService.CreateDealer(tenantID, service.DealerSpec{
		DealerName:     req.DealerName,
		BusinessName:   req.BusinessName,
		BusinessNumber: req.BusinessNumber,
		BusinessEmail:  req.BusinessEmail,
		ContactEmail:   req.ContactEmail,
		PhoneNumber:    req.PhoneNumber,
		Country:        req.Country,
		State:          req.State,
		City:           req.City,
		Timezone:       req.Timezone,
	})
	if err != nil {
		log.Error("Failed to register dealer", err, map[string]interface{}{
			"dealer_name": req.DealerName,
		})
		errInfo := apperrors.ParseError(err, "dealer registration")
		apperrors.RespondWithError(c, http.StatusInternalServerError, errInfo.Code, errInfo.Message)
		return
	}

	log.Info("Dealer registered", map[string]interface{}{
		"dealer_id":      dealer.ID,
		"virtual_number": dealer.VirtualNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"dealer": dealer,
	})
}

func (ctrl *DealerController) GetVirtualNumber(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	dealerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid dealer ID")
		return
	}

	number, err := ctrl.dealerService.GetVirtualNumber(dealerID)
	if err != nil {
		if err == service.ErrDealerNotFound {
			apperrors.NotFound(c, apperrors.DealerNotFound, "Dealer not found")
			return
		}
		log.Error("Failed to fetch virtual number", err, map[string]interface{}{
			"dealer_id": dealerID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dealer_id":      dealerID,
		"virtual_number": number,
	})
}

// CreateProductForDealer is the dealer-facing creation path. The acting
// tenant comes from the dealer row, not from the request header.
func (ctrl *DealerController) CreateProductForDealer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	dealerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid dealer ID")
		return
	}

	var req struct {
		FieldValues map[string]string `json:"field_values" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "field_values is required")
		return
	}

	product, err := ctrl.dealerService.CreateProductForDealer(dealerID, req.FieldValues)
	if err != nil {
		switch err {
		case service.ErrDealerNotFound:
			apperrors.NotFound(c, apperrors.DealerNotFound, "Dealer not found")
		case service.ErrNoValidFields:
			apperrors.BadRequest(c, apperrors.ProductNoValidFields, "No valid visible product fields were provided")
		default:
			log.Error("Failed to create product for dealer", err, map[string]interface{}{
				"dealer_id": dealerID,
			})
			errInfo := apperrors.ParseError(err, "dealer product creation")
			apperrors.RespondWithError(c, http.StatusInternalServerError, errInfo.Code, errInfo.Message)
		}
		return
	}

	log.Info("Dealer product created", map[string]interface{}{
		"product_id": product.ID,
		"dealer_id":  dealerID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}
