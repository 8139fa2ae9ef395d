package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailLog records every invoice-email attempt, successful or not.
// Written best-effort by the notification service; a logging failure never
// affects the send result.
type EmailLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Recipients string    `gorm:"type:text;not null" json:"recipients"`
	Transport  string    `gorm:"type:varchar(30);not null" json:"transport"`
	Success    bool      `gorm:"default:false" json:"success"`
	ErrorText  *string   `gorm:"type:text" json:"error_text"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (e *EmailLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
