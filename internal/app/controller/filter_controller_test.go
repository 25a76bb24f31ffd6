package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/internal/app/service"
	"github.com/dealerhub/dealerhub-backend/internal/db"
	"github.com/dealerhub/dealerhub-backend/internal/middleware"
)

func setupFilterControllerTest(t *testing.T) (*gin.Engine, *model.Tenant) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	featureRepo := repository.NewFeatureRepository(testDB)
	filterRepo := repository.NewFilterRepository(testDB)
	fieldRepo := repository.NewFieldRepository(testDB)

	featureService := service.NewFeatureService(featureRepo)
	filterService := service.NewFilterService(testDB, filterRepo, fieldRepo, featureService)
	filterController := NewFilterController(filterService)

	tenant := &model.Tenant{Name: "Test Tenant"}
	require.NoError(t, testDB.Create(tenant).Error)
	require.NoError(t, featureService.SetFeature(tenant.ID, model.FeatureFilters, true))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ResolveTenant())

	filters := router.Group("/filters")
	{
		filters.GET("", filterController.ListFilters)
		filters.GET("/paginated", filterController.PaginateFilters)
		filters.GET("/:id", filterController.GetFilterByID)
		filters.POST("", filterController.CreateFilter)
		filters.PUT("/:id", filterController.UpdateFilter)
		filters.DELETE("/:id", filterController.DeleteFilter)
		filters.POST("/sync", filterController.SyncFilters)
	}

	return router, tenant
}

func doFilterRequest(router *gin.Engine, tenant *model.Tenant, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, tenant.ID.String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFilterController_CreateAndGet(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	w := doFilterRequest(router, tenant, http.MethodPost, "/filters", FilterRequest{
		Name:   "Color",
		Type:   "dropdown",
		Values: []string{"Red", "Blue"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]model.Filter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	filterID := created["filter"].ID

	w = doFilterRequest(router, tenant, http.MethodGet, "/filters/"+filterID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched map[string]model.Filter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Color", fetched["filter"].Name)
	assert.Equal(t, []string{"Red", "Blue"}, fetched["filter"].Values)
}

func TestFilterController_Create_InvalidValues(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	w := doFilterRequest(router, tenant, http.MethodPost, "/filters", FilterRequest{
		Name:   "Power",
		Type:   "toggle",
		Values: []string{"On"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "FILTER_INVALID_VALUES", response["error"])
}

func TestFilterController_Create_UnknownType(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	w := doFilterRequest(router, tenant, http.MethodPost, "/filters", FilterRequest{
		Name:   "Weird",
		Type:   "color_picker",
		Values: []string{"x"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "FILTER_INVALID_TYPE", response["error"])
}

func TestFilterController_Create_UnknownStatus(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	w := doFilterRequest(router, tenant, http.MethodPost, "/filters", FilterRequest{
		Name:   "Color",
		Type:   "dropdown",
		Values: []string{"Red"},
		Status: "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "FILTER_INVALID_STATUS", response["error"])
}

func TestFilterController_List_FeatureDisabled(t *testing.T) {
	router, _ := setupFilterControllerTest(t)

	// A tenant with no feature rows is gated off
	other := &model.Tenant{ID: uuid.New()}
	w := doFilterRequest(router, other, http.MethodGet, "/filters", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "FEATURE_NOT_ENABLED", response["error"])
}

func TestFilterController_GetByID_NotFound(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	w := doFilterRequest(router, tenant, http.MethodGet, "/filters/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "FILTER_NOT_FOUND", response["error"])
}

func TestFilterController_GetByID_InvalidID(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	w := doFilterRequest(router, tenant, http.MethodGet, "/filters/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilterController_Delete(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	w := doFilterRequest(router, tenant, http.MethodPost, "/filters", FilterRequest{
		Name:   "Color",
		Type:   "dropdown",
		Values: []string{"Red"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]model.Filter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	filterID := created["filter"].ID.String()

	w = doFilterRequest(router, tenant, http.MethodDelete, "/filters/"+filterID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doFilterRequest(router, tenant, http.MethodDelete, "/filters/"+filterID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterController_Paginate(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	for _, name := range []string{"A", "B", "C"} {
		w := doFilterRequest(router, tenant, http.MethodPost, "/filters", FilterRequest{
			Name:   name,
			Type:   "dropdown",
			Values: []string{"x"},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doFilterRequest(router, tenant, http.MethodGet, "/filters/paginated?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page service.PaginatedFilters
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PageSize)
}

func TestFilterController_Paginate_BadPage(t *testing.T) {
	router, tenant := setupFilterControllerTest(t)

	w := doFilterRequest(router, tenant, http.MethodGet, "/filters/paginated?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
