package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "PENDING"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceVoid    InvoiceStatus = "VOID"
)

// ValidInvoiceStatus reports whether s is one of the four accepted states.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoicePending, InvoiceSent, InvoicePaid, InvoiceVoid:
		return true
	}
	return false
}

// TaxRate is the fixed sales-tax rate applied to every invoice.
const TaxRate = 0.13

// Invoice captures one billed job. Client name and email are copied at
// creation time so later client edits never alter historical invoices.
// Billing fields (number, area, price, totals) are immutable once persisted;
// only status, notes, color and image path may change.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	InvoiceNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"invoice_number"`
	ClientID      uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	ClientName  string  `gorm:"type:varchar(200);not null" json:"client_name"`
	ClientEmail string  `gorm:"type:varchar(100);not null" json:"client_email"`
	Color       *string `gorm:"type:varchar(100)" json:"color"`
	AreaM2      float64 `gorm:"not null" json:"area_m2"`
	PricePerM2  float64 `gorm:"not null" json:"price_per_m2"`
	Description *string `gorm:"type:text" json:"description"`

	Subtotal float64       `gorm:"default:0" json:"subtotal"`
	Tax      float64       `gorm:"default:0" json:"tax"`
	Total    float64       `gorm:"default:0" json:"total"`
	Status   InvoiceStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	ImagePath *string `gorm:"type:varchar(500)" json:"image_path"`
	Notes     *string `gorm:"type:text" json:"notes"`

	EmailSent   bool       `gorm:"default:false" json:"email_sent"`
	EmailSentAt *time.Time `json:"email_sent_at"`

	IssuedAt time.Time `gorm:"index" json:"issued_at"`

	Client Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Lines  []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.IssuedAt.IsZero() {
		i.IssuedAt = time.Now()
	}
	return nil
}

// InvoiceLine links an invoice to a catalog product. Lines exist only as part
// of invoice creation and disappear with their invoice (cascade delete).
type InvoiceLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	Subtotal  float64   `gorm:"not null" json:"subtotal"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
