package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/config"
	"github.com/dealerhub/dealerhub-backend/internal/app/controller"
	"github.com/dealerhub/dealerhub-backend/internal/middleware"
)

type Router struct {
	schemaController  *controller.SchemaController
	productController *controller.ProductController
	dealerController  *controller.DealerController
	filterController  *controller.FilterController
	config            *config.Config
}

func NewRouter(
	schemaController *controller.SchemaController,
	productController *controller.ProductController,
	dealerController *controller.DealerController,
	filterController *controller.FilterController,
	cfg *config.Config,
) *Router {
	return &Router{
		schemaController:  schemaController,
		productController: productController,
		dealerController:  dealerController,
		filterController:  filterController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "DealerHub API is running",
		})
	})

	// Everything under /api/v1 acts on behalf of a tenant.
	v1 := router.Group("/api/v1")
	v1.Use(middleware.ResolveTenant())
	{
		schema := v1.Group("/schema")
		{
			schema.GET("/sections", r.schemaController.ListSections)
			schema.POST("/sections", r.schemaController.CreateSection)
			schema.PUT("/sections/:id", r.schemaController.UpdateSection)
			schema.DELETE("/sections/:id", r.schemaController.DeleteSection)

			schema.POST("/fields", r.schemaController.CreateField)
			schema.PUT("/fields/:id", r.schemaController.UpdateField)
			schema.DELETE("/fields/:id", r.schemaController.DeleteField)
		}

		products := v1.Group("/products")
		{
			products.POST("", r.productController.CreateProduct)
			products.POST("/filter", r.productController.FilterProducts)
		}

		dealers := v1.Group("/dealers")
		{
			dealers.POST("", r.dealerController.CreateDealer)
			dealers.GET("/:id/virtual-number", r.dealerController.GetVirtualNumber)
			dealers.POST("/:id/products", r.dealerController.CreateProductForDealer)
		}

		filters := v1.Group("/filters")
		{
			filters.GET("", r.filterController.ListFilters)
			filters.GET("/paginated", r.filterController.PaginateFilters)
			filters.GET("/:id", r.filterController.GetFilterByID)
			filters.POST("", r.filterController.CreateFilter)
			filters.PUT("/:id", r.filterController.UpdateFilter)
			filters.DELETE("/:id", r.filterController.DeleteFilter)
			filters.POST("/sync", r.filterController.SyncFilters)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, X-Tenant-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
