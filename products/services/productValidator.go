package services

import (
	"strings"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/products/requests"
)

// ValidateCreateProductRequest checks the creation payload.
func ValidateCreateProductRequest(req *requests.CreateProductRequest) error {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)

	if req.Code == "" {
		return apperr.Invalid("product code cannot be empty")
	}
	if req.Name == "" {
		return apperr.Invalid("product name cannot be empty")
	}
	if req.UnitPrice <= 0 {
		return apperr.Invalid("unit price must be greater than 0")
	}
	if req.Stock < 0 {
		return apperr.Invalid("stock cannot be negative")
	}
	return nil
}

// ValidateUpdateProductRequest checks only the fields present in a partial update.
func ValidateUpdateProductRequest(req *requests.UpdateProductRequest) error {
	if req.Code != nil {
		trimmed := strings.TrimSpace(*req.Code)
		if trimmed == "" {
			return apperr.Invalid("product code cannot be empty")
		}
		req.Code = &trimmed
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return apperr.Invalid("product name cannot be empty")
		}
		req.Name = &trimmed
	}
	if req.UnitPrice != nil && *req.UnitPrice <= 0 {
		return apperr.Invalid("unit price must be greater than 0")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return apperr.Invalid("stock cannot be negative")
	}
	return nil
}
