package requests

import "invoicing-backend/db/models"

type CreateClientRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	NationalID string  `json:"national_id"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
}

// UpdateClientRequest carries only the fields a partial update may touch.
// Nil means "leave as is". The national ID is immutable after creation.
type UpdateClientRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	Active    *bool   `json:"active"`
}

// Apply merges the supplied fields onto the client record.
func (r *UpdateClientRequest) Apply(client *models.Client) {
	if r.FirstName != nil {
		client.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		client.LastName = *r.LastName
	}
	if r.Phone != nil {
		client.Phone = r.Phone
	}
	if r.Email != nil {
		client.Email = r.Email
	}
	if r.Address != nil {
		client.Address = r.Address
	}
	if r.Active != nil {
		client.Active = *r.Active
	}
}
