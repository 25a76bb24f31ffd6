package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dealerhub/dealerhub-backend/internal/app/model"
	"github.com/dealerhub/dealerhub-backend/internal/db"
)

func setupFieldRepoTest(t *testing.T) (*gorm.DB, FieldRepository, uuid.UUID, uuid.UUID) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	tenant := &model.Tenant{Name: "Test Tenant"}
	require.NoError(t, testDB.Create(tenant).Error)

	section := &model.ProductSection{TenantID: tenant.ID, Name: "Specs"}
	require.NoError(t, testDB.Create(section).Error)

	return testDB, NewFieldRepository(testDB), tenant.ID, section.ID
}

func createField(t *testing.T, repo FieldRepository, tenantID, sectionID uuid.UUID, name string, visibleToDealer, filterable, autoSync bool) *model.ProductField {
	t.Helper()

	field := &model.ProductField{
		TenantID:        tenantID,
		SectionID:       sectionID,
		Name:            name,
		FieldType:       model.FieldTypeText,
		VisibleToDealer: visibleToDealer,
		Filterable:      filterable,
		AutoSyncEnabled: autoSync,
		Visible:         true,
	}
	require.NoError(t, repo.Create(field))
	return field
}

func TestFieldRepository_ListVisibleToDealer(t *testing.T) {
	_, repo, tenantID, sectionID := setupFieldRepoTest(t)

	createField(t, repo, tenantID, sectionID, "Color", true, false, false)
	createField(t, repo, tenantID, sectionID, "InternalSKU", false, false, false)

	fields, err := repo.ListVisibleToDealer(tenantID)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "Color", fields[0].Name)
}

func TestFieldRepository_ListFilterable(t *testing.T) {
	_, repo, tenantID, sectionID := setupFieldRepoTest(t)

	createField(t, repo, tenantID, sectionID, "Color", true, true, false)
	createField(t, repo, tenantID, sectionID, "Notes", true, false, false)

	fields, err := repo.ListFilterable(tenantID)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "Color", fields[0].Name)
}

func TestFieldRepository_ListAutoSyncTenantIDs(t *testing.T) {
	testDB, repo, tenantID, sectionID := setupFieldRepoTest(t)

	// Two auto-sync fields for the same tenant count once
	createField(t, repo, tenantID, sectionID, "Color", true, true, true)
	createField(t, repo, tenantID, sectionID, "Size", true, true, true)
	// Filterable without auto-sync does not qualify
	createField(t, repo, tenantID, sectionID, "Notes", true, true, false)

	other := &model.Tenant{Name: "Quiet Tenant"}
	require.NoError(t, testDB.Create(other).Error)
	otherSection := &model.ProductSection{TenantID: other.ID, Name: "Specs"}
	require.NoError(t, testDB.Create(otherSection).Error)
	createField(t, repo, other.ID, otherSection.ID, "Color", true, false, false)

	tenantIDs, err := repo.ListAutoSyncTenantIDs()
	require.NoError(t, err)
	require.Len(t, tenantIDs, 1)
	assert.Equal(t, tenantID, tenantIDs[0])
}
