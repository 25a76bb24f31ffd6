package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductSection is a tenant-defined grouping of product fields. Together
// the sections and fields form the tenant's product schema.
//
// A section cannot be deleted while it still owns fields; the delete is a
// rejected no-op, never a cascade.
type ProductSection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Fields []ProductField `gorm:"foreignKey:SectionID" json:"fields"`
}

func (ProductSection) TableName() string {
	return "product_sections"
}

func (s *ProductSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
