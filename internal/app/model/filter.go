package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilterType string

const (
	FilterTypeDropdown    FilterType = "dropdown"
	FilterTypeMultiSelect FilterType = "multiselect"
	FilterTypeToggle      FilterType = "toggle"
	FilterTypeSlider      FilterType = "slider"
	FilterTypeRangeSlider FilterType = "range_slider"
	FilterTypeText        FilterType = "text"
)

type FilterStatus string

const (
	FilterStatusActive   FilterStatus = "active"
	FilterStatusArchived FilterStatus = "archived"
)

// Filter is a tenant-defined facet buyers query products by. Filters are
// either hand-authored or derived from filterable product fields.
//
// Name is kept unique per tenant by the synchronizer's dedup check only;
// there is no unique index on it.
type Filter struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     uuid.UUID    `gorm:"type:uuid;index;not null" json:"tenant_id"`
	Name         string       `gorm:"not null" json:"name"`
	Type         FilterType   `gorm:"type:varchar(50);not null" json:"type"`
	IsDefault    bool         `gorm:"default:false" json:"is_default"`
	Description  string       `json:"description"`
	Values       []string     `gorm:"serializer:json" json:"values"`
	Status       FilterStatus `gorm:"type:varchar(50);default:'active'" json:"status"`
	UsageCount   int          `gorm:"default:0" json:"usage_count"`
	CreatedAt    time.Time    `json:"created_at"`
	LastModified time.Time    `gorm:"autoUpdateTime" json:"last_modified"`
}

func (Filter) TableName() string {
	return "filters"
}

func (f *Filter) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
