package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/service"
	"github.com/dealerhub/dealerhub-backend/internal/middleware"
)

var errInvalidSectionID = errors.New("invalid section_id")

type SchemaController struct {
	schemaService service.SchemaService
}

func NewSchemaController(schemaService service.SchemaService) *SchemaController {
	return &SchemaController{schemaService: schemaService}
}

type SectionRequest struct {
	Name string `json:"name" binding:"required"`
}

type FieldRequest struct {
	SectionID       string   `json:"section_id" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	FieldType       string   `json:"field_type" binding:"required"`
	VisibleToDealer bool     `json:"visible_to_dealer"`
	Required        bool     `json:"required"`
	AutoSyncEnabled bool     `json:"auto_sync_enabled"`
	Filterable      bool     `json:"filterable"`
	IsVariantOption bool     `json:"is_variant_option"`
	Visible         bool     `json:"visible"`
	Options         []string `json:"options"`
}

func (ctrl *SchemaController) CreateSection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid section creation request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Section name is required",
		})
		return
	}

	section, err := ctrl.schemaService.CreateSection(tenantID, req.Name)
	if err != nil {
		if err == service.ErrFeatureNotEnabled {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Products feature is not enabled for this tenant",
			})
			return
		}
		log.Error("Failed to create section", err, map[string]interface{}{
			"name": req.Name,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create section",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"section": section,
	})
}

func (ctrl *SchemaController) UpdateSection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid section ID",
		})
		return
	}

	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Section name is required",
		})
		return
	}

	updated, err := ctrl.schemaService.UpdateSection(tenantID, id, req.Name)
	if err != nil {
		if err == service.ErrFeatureNotEnabled {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Products feature is not enabled for this tenant",
			})
			return
		}
		log.Error("Failed to update section", err, map[string]interface{}{
			"section_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update section",
		})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Section not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated": true,
	})
}

func (ctrl *SchemaController) DeleteSection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid section ID",
		})
		return
	}

	deleted, err := ctrl.schemaService.DeleteSection(tenantID, id)
	if err != nil {
		if err == service.ErrFeatureNotEnabled {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Products feature is not enabled for this tenant",
			})
			return
		}
		log.Error("Failed to delete section", err, map[string]interface{}{
			"section_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete section",
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Section not found or still owns fields",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": true,
	})
}

func (ctrl *SchemaController) CreateField(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid field creation request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "section_id, name and field_type are required",
		})
		return
	}

	spec, err := fieldSpecFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	field, err := ctrl.schemaService.CreateField(tenantID, spec)
	if err != nil {
		switch err {
		case service.ErrFeatureNotEnabled:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Products feature is not enabled for this tenant",
			})
		case service.ErrSectionNotFound:
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Section not found",
			})
		default:
			log.Error("Failed to create field", err, map[string]interface{}{
				"name": req.Name,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create field",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"field": field,
	})
}

func (ctrl *SchemaController) UpdateField(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid field ID",
		})
		return
	}

	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "section_id, name and field_type are required",
		})
		return
	}

	spec, err := fieldSpecFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	updated, err := ctrl.schemaService.UpdateField(tenantID, id, spec)
	if err != nil {
		if err == service.ErrFeatureNotEnabled {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Products feature is not enabled for this tenant",
			})
			return
		}
		log.Error("Failed to update field", err, map[string]interface{}{
			"field_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update field",
		})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Field not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated": true,
	})
}

func (ctrl *SchemaController) DeleteField(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid field ID",
		})
		return
	}

	deleted, err := ctrl.schemaService.DeleteField(tenantID, id)
	if err != nil {
		if err == service.ErrFeatureNotEnabled {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Products feature is not enabled for this tenant",
			})
			return
		}
		log.Error("Failed to delete field", err, map[string]interface{}{
			"field_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete field",
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Field not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": true,
	})
}

func (ctrl *SchemaController) ListSections(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	dealerVisibleOnly := strings.EqualFold(c.DefaultQuery("dealer_visible", "false"), "true")

	sections, err := ctrl.schemaService.ListSections(tenantID, dealerVisibleOnly)
	if err != nil {
		log.Error("Failed to list sections", err, map[string]interface{}{
			"dealer_visible": dealerVisibleOnly,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch sections",
		})
		return
	}

	log.Info("Sections listed", map[string]interface{}{
		"count":          len(sections),
		"dealer_visible": dealerVisibleOnly,
	})

	c.JSON(http.StatusOK, gin.H{
		"sections": sections,
		"count":    len(sections),
	})
}

func fieldSpecFromRequest(req FieldRequest) (service.FieldSpec, error) {
	sectionID, err := uuid.Parse(req.SectionID)
	if err != nil {
		return service.FieldSpec{}, errInvalidSectionID
	}
	return service.FieldSpec{
		SectionID:       sectionID,
		Name:            req.Name,
		FieldType:       model.FieldType(req.FieldType),
		VisibleToDealer: req.VisibleToDealer,
		Required:        req.Required,
		AutoSyncEnabled: req.AutoSyncEnabled,
		Filterable:      req.Filterable,
		IsVariantOption: req.IsVariantOption,
		Visible:         req.Visible,
		Options:         req.Options,
	}, nil
}
