package requests

import "invoicing-backend/db/models"

type CreateProductRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Stock       int     `json:"stock"`
	Category    *string `json:"category"`
}

// UpdateProductRequest carries only the fields a partial update may touch.
// Nil means "leave as is". A code change triggers a uniqueness re-check.
type UpdateProductRequest struct {
	Code        *string  `json:"code"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	UnitPrice   *float64 `json:"unit_price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Active      *bool    `json:"active"`
}

// Apply merges the supplied fields onto the product record.
func (r *UpdateProductRequest) Apply(product *models.Product) {
	if r.Code != nil {
		product.Code = *r.Code
	}
	if r.Name != nil {
		product.Name = *r.Name
	}
	if r.Description != nil {
		product.Description = r.Description
	}
	if r.UnitPrice != nil {
		product.UnitPrice = *r.UnitPrice
	}
	if r.Stock != nil {
		product.Stock = *r.Stock
	}
	if r.Category != nil {
		product.Category = r.Category
	}
	if r.Active != nil {
		product.Active = *r.Active
	}
}

type UpdateStockRequest struct {
	Stock int `json:"stock"`
}
