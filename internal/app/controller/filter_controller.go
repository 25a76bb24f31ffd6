package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/service"
	apperrors "github.com/dealerhub/dealerhub-backend/internal/errors"
	"github.com/dealerhub/dealerhub-backend/internal/middleware"
)

type FilterController struct {
	filterService service.FilterService
}

func NewFilterController(filterService service.FilterService) *FilterController {
	return &FilterController{filterService: filterService}
}

type FilterRequest struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	IsDefault   bool     `json:"is_default"`
	Description string   `json:"description"`
	Values      []string `json:"values"`
	Status      string   `json:"status"`
}

func (req FilterRequest) toSpec() service.FilterSpec {
	return service.FilterSpec{
		Name:        req.Name,
		Type:        model.FilterType(req.Type),
		IsDefault:   req.IsDefault,
		Description: req.Description,
		Values:      req.Values,
		Status:      model.FilterStatus(req.Status),
	}
}

func (ctrl *FilterController) ListFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	filters, err := ctrl.filterService.List(tenantID)
	if err != nil {
		ctrl.respondServiceError(c, err, "filter listing")
		return
	}

	log.Info("Filters listed", map[string]interface{}{
		"count": len(filters),
	})

	c.JSON(http.StatusOK, gin.H{
		"filters": filters,
		"count":   len(filters),
	})
}

func (ctrl *FilterController) PaginateFilters(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "page must be a positive integer")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "page_size must be a positive integer")
		return
	}

	result, err := ctrl.filterService.Paginate(tenantID, page, pageSize)
	if err != nil {
		ctrl.respondServiceError(c, err, "filter pagination")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (ctrl *FilterController) GetFilterByID(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid filter ID")
		return
	}

	filter, err := ctrl.filterService.GetByID(tenantID, id)
	if err != nil {
		ctrl.respondServiceError(c, err, "filter lookup")
		return
	}
	if filter == nil {
		apperrors.NotFound(c, apperrors.FilterNotFound, "Filter not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filter": filter,
	})
}

func (ctrl *FilterController) CreateFilter(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid filter creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "name and type are required")
		return
	}

	filter, err := ctrl.filterService.Create(tenantID, req.toSpec())
	if err != nil {
		ctrl.respondServiceError(c, err, "filter creation")
		return
	}

	log.Info("Filter created", map[string]interface{}{
		"filter_id": filter.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"filter": filter,
	})
}

func (ctrl *FilterController) UpdateFilter(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid filter ID")
		return
	}

	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "name and type are required")
		return
	}

	filter, err := ctrl.filterService.Update(tenantID, id, req.toSpec())
	if err != nil {
		ctrl.respondServiceError(c, err, "filter update")
		return
	}
	if filter == nil {
		apperrors.NotFound(c, apperrors.FilterNotFound, "Filter not found")
		return
	}

	log.Info("Filter updated", map[string]interface{}{
		"filter_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"filter": filter,
	})
}

func (ctrl *FilterController) DeleteFilter(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid filter ID")
		return
	}

	deleted, err := ctrl.filterService.Delete(tenantID, id)
	if err != nil {
		ctrl.respondServiceError(c, err, "filter deletion")
		return
	}
	if !deleted {
		apperrors.NotFound(c, apperrors.FilterNotFound, "Filter not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": true,
	})
}

// SyncFilters derives filters from filterable product fields on demand.
func (ctrl *FilterController) SyncFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	created, err := ctrl.filterService.SyncFromFields(tenantID)
	if err != nil {
		ctrl.respondServiceError(c, err, "filter sync")
		return
	}

	log.Info("Filter sync requested", map[string]interface{}{
		"created_count": created,
	})

	c.JSON(http.StatusOK, gin.H{
		"created_count": created,
	})
}

// respondServiceError maps filter service errors onto the standard error
// payload. Validation sentinels keep the rule text from the service.
func (ctrl *FilterController) respondServiceError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrFeatureNotEnabled):
		apperrors.Unauthorized(c, apperrors.FeatureNotEnabled, "Filters feature is not enabled for this tenant")
	case errors.Is(err, service.ErrInvalidFilterType):
		apperrors.BadRequest(c, apperrors.FilterInvalidType, err.Error())
	case errors.Is(err, service.ErrInvalidFilterValues):
		apperrors.BadRequest(c, apperrors.FilterInvalidValues, err.Error())
	case errors.Is(err, service.ErrInvalidFilterStatus):
		apperrors.BadRequest(c, apperrors.FilterInvalidStatus, err.Error())
	default:
		log.Error("Filter operation failed", err, map[string]interface{}{
			"context": context,
		})
		errInfo := apperrors.ParseError(err, context)
		apperrors.RespondWithError(c, http.StatusInternalServerError, errInfo.Code, errInfo.Message)
	}
}
