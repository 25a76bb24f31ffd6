package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTenantMiddlewareTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ResolveTenant())
	router.GET("/probe", func(c *gin.Context) {
		tenantID, ok := GetTenantID(c)
		c.JSON(http.StatusOK, gin.H{
			"tenant_id": tenantID,
			"resolved":  ok,
		})
	})
	return router
}

func TestResolveTenant_Success(t *testing.T) {
	router := setupTenantMiddlewareTest()

	tenantID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(TenantHeader, tenantID.String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, tenantID.String(), response["tenant_id"])
	assert.Equal(t, true, response["resolved"])
}

func TestResolveTenant_MissingHeader(t *testing.T) {
	router := setupTenantMiddlewareTest()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "TENANT_MISSING", response["error"])
}

func TestResolveTenant_InvalidUUID(t *testing.T) {
	router := setupTenantMiddlewareTest()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(TenantHeader, "not-a-uuid")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "TENANT_INVALID", response["error"])
}
