package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product carries no fixed attribute columns. Everything the dealer
// submitted lives in FieldValues, keyed by field name.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	DealerID  uuid.UUID `gorm:"type:uuid;index;not null" json:"dealer_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	FieldValues []ProductFieldValue `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"field_values"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductFieldValue is one attribute instance attached to a product. It
// references its field by name only; deleting the field definition leaves
// existing values in place.
type ProductFieldValue struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	FieldName string    `gorm:"not null" json:"field_name"`
	Value     string    `json:"value"`
}

func (ProductFieldValue) TableName() string {
	return "product_field_values"
}

func (v *ProductFieldValue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
