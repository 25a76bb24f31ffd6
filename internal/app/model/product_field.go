package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldType is a presentation/validation hint; it never changes how the
// value is stored (values are always strings).
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
)

// ProductField is a typed attribute definition inside a section. Its name
// is the join key used by product values and filter synchronization
// (matched case-insensitively).
type ProductField struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID        uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	SectionID       uuid.UUID `gorm:"type:uuid;index;not null" json:"section_id"`
	Name            string    `gorm:"not null" json:"name"`
	FieldType       FieldType `gorm:"type:varchar(50)" json:"field_type"`
	VisibleToDealer bool      `gorm:"default:false" json:"visible_to_dealer"`
	Required        bool      `gorm:"default:false" json:"required"`
	AutoSyncEnabled bool      `gorm:"default:false" json:"auto_sync_enabled"`
	Filterable      bool      `gorm:"default:false" json:"filterable"`
	IsVariantOption bool      `gorm:"default:false" json:"is_variant_option"`
	Visible         bool      `gorm:"default:true" json:"visible"`
	Options         []string  `gorm:"serializer:json" json:"options"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (ProductField) TableName() string {
	return "product_fields"
}

func (f *ProductField) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
