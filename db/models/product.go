package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry. The invoice workflow stores service attributes
// directly on the invoice, so products only participate through optional
// invoice lines; stock is informational and never decremented by invoicing.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Code        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	Stock       int       `gorm:"default:0" json:"stock"`
	Category    *string   `gorm:"type:varchar(50)" json:"category"`
	Active      bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
