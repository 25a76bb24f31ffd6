package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/internal/db"
)

func setupProductServiceTest(t *testing.T) (ProductService, *model.Tenant, *model.Dealer, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	featureRepo := repository.NewFeatureRepository(testDB)
	fieldRepo := repository.NewFieldRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)

	featureService := NewFeatureService(featureRepo)
	productService := NewProductService(testDB, productRepo, fieldRepo, featureService)

	tenant := &model.Tenant{Name: "Test Tenant"}
	testDB.Create(tenant)
	require.NoError(t, featureService.SetFeature(tenant.ID, model.FeatureProducts, true))

	dealer := &model.Dealer{
		TenantID:   tenant.ID,
		DealerName: "Test Dealer",
	}
	testDB.Create(dealer)

	section := &model.ProductSection{TenantID: tenant.ID, Name: "Specs"}
	testDB.Create(section)

	// Color is dealer-visible, Ghost is not
	testDB.Create(&model.ProductField{
		TenantID:        tenant.ID,
		SectionID:       section.ID,
		Name:            "Color",
		FieldType:       model.FieldTypeDropdown,
		VisibleToDealer: true,
		Filterable:      true,
		Visible:         true,
		Options:         []string{"Red", "Green", "Blue"},
	})
	testDB.Create(&model.ProductField{
		TenantID:  tenant.ID,
		SectionID: section.ID,
		Name:      "Ghost",
		FieldType: model.FieldTypeText,
		Visible:   true,
	})

	return productService, tenant, dealer, testDB
}

func TestProductService_CreateProduct(t *testing.T) {
	productService, tenant, dealer, testDB := setupProductServiceTest(t)

	product, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"Color": "Red",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	require.Len(t, product.FieldValues, 1)
	assert.Equal(t, "Color", product.FieldValues[0].FieldName)
	assert.Equal(t, "Red", product.FieldValues[0].Value)

	var count int64
	testDB.Model(&model.Product{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProductService_CreateProduct_DropsHiddenFields(t *testing.T) {
	productService, tenant, dealer, _ := setupProductServiceTest(t)

	// Ghost is not dealer-visible and Unknown is not in the schema; both
	// are dropped without an error as long as something valid remains
	product, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"Color":   "Blue",
		"Ghost":   "boo",
		"Unknown": "x",
	})
	require.NoError(t, err)
	require.Len(t, product.FieldValues, 1)
	assert.Equal(t, "Color", product.FieldValues[0].FieldName)
}

func TestProductService_CreateProduct_NoValidFields(t *testing.T) {
	productService, tenant, dealer, testDB := setupProductServiceTest(t)

	_, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"Ghost":   "boo",
		"Unknown": "x",
	})
	assert.ErrorIs(t, err, ErrNoValidFields)

	// Nothing persisted
	var count int64
	testDB.Model(&model.Product{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestProductService_CreateProduct_FeatureDisabled(t *testing.T) {
	productService, tenant, dealer, testDB := setupProductServiceTest(t)

	featureService := NewFeatureService(repository.NewFeatureRepository(testDB))
	require.NoError(t, featureService.SetFeature(tenant.ID, model.FeatureProducts, false))

	_, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"Color": "Red",
	})
	assert.ErrorIs(t, err, ErrFeatureNotEnabled)
}

func TestProductService_CreateProduct_CaseInsensitiveKeys(t *testing.T) {
	productService, tenant, dealer, _ := setupProductServiceTest(t)

	// The visibility check ignores case but the stored key keeps the
	// caller's spelling
	product, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"color": "Red",
	})
	require.NoError(t, err)
	require.Len(t, product.FieldValues, 1)
	assert.Equal(t, "color", product.FieldValues[0].FieldName)
}

func TestProductService_FilterProducts_EmptyCriteriaMatchesAll(t *testing.T) {
	productService, tenant, dealer, _ := setupProductServiceTest(t)

	for _, color := range []string{"Red", "Green", "Blue"} {
		_, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
			"Color": color,
		})
		require.NoError(t, err)
	}

	matches, err := productService.FilterProducts(tenant.ID, map[string]string{})
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestProductService_FilterProducts_MatchesAllCriteria(t *testing.T) {
	productService, tenant, dealer, _ := setupProductServiceTest(t)

	red, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"Color": "Red",
	})
	require.NoError(t, err)
	_, err = productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"Color": "Green",
	})
	require.NoError(t, err)

	// Criterion key and value match ignoring case
	matches, err := productService.FilterProducts(tenant.ID, map[string]string{
		"color": "red",
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, red.ID, matches[0].ProductID)
	assert.Equal(t, dealer.ID, matches[0].DealerID)
	assert.Equal(t, "Red", matches[0].Fields["Color"])
}

func TestProductService_FilterProducts_MissingKeyExcludes(t *testing.T) {
	productService, tenant, dealer, _ := setupProductServiceTest(t)

	_, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"Color": "Red",
	})
	require.NoError(t, err)

	matches, err := productService.FilterProducts(tenant.ID, map[string]string{
		"Color": "Red",
		"Size":  "M",
	})
	require.NoError(t, err)
	assert.Len(t, matches, 0)
}

func TestProductService_FilterProducts_TenantIsolation(t *testing.T) {
	productService, tenant, dealer, testDB := setupProductServiceTest(t)

	_, err := productService.CreateProduct(tenant.ID, dealer.ID, map[string]string{
		"Color": "Red",
	})
	require.NoError(t, err)

	other := &model.Tenant{Name: "Other Tenant"}
	testDB.Create(other)

	matches, err := productService.FilterProducts(other.ID, map[string]string{})
	require.NoError(t, err)
	assert.Len(t, matches, 0)
}
