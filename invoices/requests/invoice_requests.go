package requests

import (
	"invoicing-backend/db/models"

	"github.com/google/uuid"
)

type CreateInvoiceLineRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	ClientID    uuid.UUID                  `json:"client_id"`
	ClientName  string                     `json:"client_name"`
	ClientEmail string                     `json:"client_email"`
	Color       *string                    `json:"color"`
	AreaM2      float64                    `json:"area_m2"`
	PricePerM2  float64                    `json:"price_per_m2"`
	Description *string                    `json:"description"`
	Notes       *string                    `json:"notes"`
	Lines       []CreateInvoiceLineRequest `json:"lines"`
}

// UpdateInvoiceRequest carries the only invoice fields that stay mutable
// after creation. Billing fields are immutable once the invoice exists.
type UpdateInvoiceRequest struct {
	Status    *models.InvoiceStatus `json:"status"`
	Notes     *string               `json:"notes"`
	Color     *string               `json:"color"`
	ImagePath *string               `json:"image_path"`
}

// Apply merges the supplied fields onto the invoice record.
func (r *UpdateInvoiceRequest) Apply(invoice *models.Invoice) {
	if r.Status != nil {
		invoice.Status = *r.Status
	}
	if r.Notes != nil {
		invoice.Notes = r.Notes
	}
	if r.Color != nil {
		invoice.Color = r.Color
	}
	if r.ImagePath != nil {
		invoice.ImagePath = r.ImagePath
	}
}

// SendInvoiceEmailRequest optionally adds a recipient and a personal message
// on top of the standard client + business-copy delivery.
type SendInvoiceEmailRequest struct {
	ExtraRecipient  *string `json:"extra_recipient"`
	PersonalMessage *string `json:"personal_message"`
}
