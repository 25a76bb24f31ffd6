package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feature names checked before mutating operations
const (
	FeatureProducts = "products"
	FeatureFilters  = "filters"
)

// TenantFeature is a per-tenant entitlement switch
type TenantFeature struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;index:idx_tenant_features_tenant_feature;not null" json:"tenant_id"`
	Feature   string    `gorm:"index:idx_tenant_features_tenant_feature;not null" json:"feature"`
	Enabled   bool      `gorm:"default:false" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TenantFeature) TableName() string {
	return "tenant_features"
}

func (f *TenantFeature) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
