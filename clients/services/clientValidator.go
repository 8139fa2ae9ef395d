package services

import (
	"strings"

	"invoicing-backend/clients/requests"
	"invoicing-backend/internal/apperr"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Spanish)

// ValidateCreateClientRequest checks the creation payload and normalizes
// names to title case in place.
func ValidateCreateClientRequest(req *requests.CreateClientRequest) error {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.NationalID = strings.TrimSpace(req.NationalID)

	if len(req.NationalID) < 9 {
		return apperr.Invalid("national ID must have at least 9 characters")
	}
	if len(req.FirstName) < 2 || len(req.LastName) < 2 {
		return apperr.Invalid("first and last name must have at least 2 characters")
	}
	if req.Email != nil && *req.Email != "" && !strings.Contains(*req.Email, "@") {
		return apperr.Invalid("client email is not valid")
	}

	req.FirstName = titleCaser.String(req.FirstName)
	req.LastName = titleCaser.String(req.LastName)
	return nil
}

// ValidateUpdateClientRequest checks only the fields present in a partial
// update and normalizes supplied names.
func ValidateUpdateClientRequest(req *requests.UpdateClientRequest) error {
	if req.FirstName != nil {
		trimmed := strings.TrimSpace(*req.FirstName)
		if len(trimmed) < 2 {
			return apperr.Invalid("first name must have at least 2 characters")
		}
		normalized := titleCaser.String(trimmed)
		req.FirstName = &normalized
	}
	if req.LastName != nil {
		trimmed := strings.TrimSpace(*req.LastName)
		if len(trimmed) < 2 {
			return apperr.Invalid("last name must have at least 2 characters")
		}
		normalized := titleCaser.String(trimmed)
		req.LastName = &normalized
	}
	if req.Email != nil && *req.Email != "" && !strings.Contains(*req.Email, "@") {
		return apperr.Invalid("client email is not valid")
	}
	return nil
}
