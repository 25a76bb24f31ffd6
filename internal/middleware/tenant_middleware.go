package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealerhub/dealerhub-backend/internal/errors"
)

// TenantHeader carries the acting tenant's UUID on every request
const TenantHeader = "X-Tenant-ID"

// TenantIDKey is the gin context key the resolved tenant is stored under
const TenantIDKey = "tenant_id"

// ResolveTenant extracts the tenant from the request header. Requests
// without a parsable tenant are rejected before any handler runs; the
// resolved UUID is passed explicitly into services, never read from
// globals.
func ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		header := c.GetHeader(TenantHeader)
		if header == "" {
			log.Warn("Missing tenant header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, errors.TenantMissing, "Tenant ID not found in header")
			c.Abort()
			return
		}

		tenantID, err := uuid.Parse(header)
		if err != nil {
			log.Warn("Invalid tenant header", map[string]interface{}{
				"path":   c.Request.URL.Path,
				"tenant": header,
			})
			errors.Unauthorized(c, errors.TenantInvalid, "Tenant ID is not a valid UUID")
			c.Abort()
			return
		}

		c.Set(TenantIDKey, tenantID)

		log.Debug("Tenant resolved", map[string]interface{}{
			"tenant_id": tenantID,
		})

		c.Next()
	}
}

// GetTenantID extracts the resolved tenant from the gin context
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	tenantID, ok := value.(uuid.UUID)
	return tenantID, ok
}
