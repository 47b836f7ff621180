// Package student defines the tenant-scoped student roster model.
package student

import (
	"errors"
	"net/mail"
	"time"
)

// Student is a gym member record owned by a tenant.
type Student struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the input for enrolling a student.
type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return errors.New("invalid email format")
		}
	}
	return nil
}
