package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every row keyed by a UUID string
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUIDv4 when the caller did not set one
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// AllModels lists every model, in migration order
func AllModels() []interface{} {
	return []interface{}{
		&Profile{},
		&Parcel{},
		&SoilAnalysis{},
		&LimingProduct{},
		&FertilizationProduct{},
		&LimingRequest{},
		&PortalImage{},
		&AuditLog{},
		&CalculatorUsage{},
		&Lead{},
	}
}
