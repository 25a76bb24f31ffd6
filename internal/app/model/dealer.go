package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dealer is a selling business registered under a tenant. Products are
// always created on behalf of a dealer.
type Dealer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	DealerName     string    `gorm:"not null" json:"dealer_name"`
	BusinessName   string    `json:"business_name"`
	BusinessNumber string    `json:"business_number"`
	BusinessEmail  string    `json:"business_email"`
	ContactEmail   string    `json:"contact_email"`
	PhoneNumber    string    `json:"phone_number"`
	Country        string    `json:"country"`
	State          string    `json:"state"`
	City           string    `json:"city"`
	Timezone       string    `json:"timezone"`
	VirtualNumber  string    `json:"virtual_number"` // assigned at registration
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:DealerID" json:"-"`
}

func (Dealer) TableName() string {
	return "dealers"
}

func (d *Dealer) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
