package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer of the business. Clients are never hard-deleted;
// deactivation flips Active so historical invoices keep a valid reference.
type Client struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName  string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"last_name"`
	NationalID string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"national_id"`
	Phone      *string   `gorm:"type:varchar(20)" json:"phone"`
	Email      *string   `gorm:"type:varchar(100)" json:"email"`
	Address    *string   `gorm:"type:text" json:"address"`
	Active     bool      `gorm:"default:true" json:"active"`

	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// FullName joins first and last name for denormalized invoice capture.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
