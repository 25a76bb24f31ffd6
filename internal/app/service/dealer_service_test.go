package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/app/repository"
	"github.com/dealerhub/dealerhub-backend/internal/db"
)

func setupDealerServiceTest(t *testing.T) (DealerService, *model.Tenant, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	dealerRepo := repository.NewDealerRepository(testDB)
	fieldRepo := repository.NewFieldRepository(testDB)
	dealerService := NewDealerService(testDB, dealerRepo, fieldRepo)

	tenant := &model.Tenant{Name: "Test Tenant"}
	testDB.Create(tenant)

	return dealerService, tenant, testDB
}

func TestDealerService_CreateDealer(t *testing.T) {
	dealerService, tenant, _ := setupDealerServiceTest(t)

	dealer, err := dealerService.CreateDealer(tenant.ID, DealerSpec{
		DealerName:   "Acme Motors",
		BusinessName: "Acme Motors LLC",
		Country:      "US",
		Timezone:     "America/New_York",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, dealer.ID)
	assert.Equal(t, tenant.ID, dealer.TenantID)
	assert.Equal(t, "Acme Motors", dealer.DealerName)

	assert.True(t, strings.HasPrefix(dealer.VirtualNumber, "VN"))
	assert.Len(t, dealer.VirtualNumber, 12)
}

func TestDealerService_GetVirtualNumber(t *testing.T) {
	dealerService, tenant, _ := setupDealerServiceTest(t)

	dealer, err := dealerService.CreateDealer(tenant.ID, DealerSpec{
		DealerName: "Acme Motors",
	})
	require.NoError(t, err)

	number, err := dealerService.GetVirtualNumber(dealer.ID)
	assert.NoError(t, err)
	assert.Equal(t, dealer.VirtualNumber, number)
}

func TestDealerService_GetVirtualNumber_NotFound(t *testing.T) {
	dealerService, _, _ := setupDealerServiceTest(t)

	_, err := dealerService.GetVirtualNumber(uuid.New())
	assert.ErrorIs(t, err, ErrDealerNotFound)
}

func TestDealerService_CreateProductForDealer(t *testing.T) {
	dealerService, tenant, testDB := setupDealerServiceTest(t)

	dealer, err := dealerService.CreateDealer(tenant.ID, DealerSpec{
		DealerName: "Acme Motors",
	})
	require.NoError(t, err)

	section := &model.ProductSection{TenantID: tenant.ID, Name: "Specs"}
	testDB.Create(section)
	testDB.Create(&model.ProductField{
		TenantID:        tenant.ID,
		SectionID:       section.ID,
		Name:            "Color",
		FieldType:       model.FieldTypeDropdown,
		VisibleToDealer: true,
		Visible:         true,
	})

	product, err := dealerService.CreateProductForDealer(dealer.ID, map[string]string{
		"Color": "Red",
	})
	require.NoError(t, err)
	// Tenant comes from the dealer row
	assert.Equal(t, tenant.ID, product.TenantID)
	assert.Equal(t, dealer.ID, product.DealerID)
	require.Len(t, product.FieldValues, 1)
	assert.Equal(t, "Color", product.FieldValues[0].FieldName)
}

func TestDealerService_CreateProductForDealer_DealerNotFound(t *testing.T) {
	dealerService, _, _ := setupDealerServiceTest(t)

	_, err := dealerService.CreateProductForDealer(uuid.New(), map[string]string{
		"Color": "Red",
	})
	assert.ErrorIs(t, err, ErrDealerNotFound)
}

func TestDealerService_CreateProductForDealer_NoValidFields(t *testing.T) {
	dealerService, tenant, _ := setupDealerServiceTest(t)

	dealer, err := dealerService.CreateDealer(tenant.ID, DealerSpec{
		DealerName: "Acme Motors",
	})
	require.NoError(t, err)

	_, err = dealerService.CreateProductForDealer(dealer.ID, map[string]string{
		"Color": "Red",
	})
	assert.ErrorIs(t, err, ErrNoValidFields)
}
