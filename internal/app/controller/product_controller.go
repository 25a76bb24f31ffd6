package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealerhub/dealerhub-backend/internal/app/service"
	"github.com/dealerhub/dealerhub-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type ProductRequest struct {
	DealerID    string            `json:"dealer_id" binding:"required"`
	FieldValues map[string]string `json:"field_values" binding:"required"`
}

type ProductFilterRequest struct {
	Criteria map[string]string `json:"criteria"`
}

func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "dealer_id and field_values are required",
		})
		return
	}

	dealerID, err := uuid.Parse(req.DealerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid dealer ID",
		})
		return
	}

	product, err := ctrl.productService.CreateProduct(tenantID, dealerID, req.FieldValues)
	if err != nil {
		switch err {
		case service.ErrFeatureNotEnabled:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Products feature is not enabled for this tenant",
			})
		case service.ErrNoValidFields:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No valid visible product fields were provided",
			})
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"dealer_id": dealerID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create product",
			})
		}
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"dealer_id":  dealerID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// FilterProducts accepts the criteria map as a JSON body so that empty
// and multi-key criteria keep their map semantics.
func (ctrl *ProductController) FilterProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tenantID, _ := middleware.GetTenantID(c)

	var req ProductFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid filter criteria",
		})
		return
	}

	matches, err := ctrl.productService.FilterProducts(tenantID, req.Criteria)
	if err != nil {
		log.Error("Failed to filter products", err, map[string]interface{}{
			"criteria_count": len(req.Criteria),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to filter products",
		})
		return
	}

	log.Info("Products filtered", map[string]interface{}{
		"criteria_count": len(req.Criteria),
		"match_count":    len(matches),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": matches,
		"count":    len(matches),
	})
}
