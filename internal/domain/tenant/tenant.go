// Package tenant defines the tenant domain model for multi-tenancy.
package tenant

import "time"

// Status is a tenant's subscription state. It gates every tenant-scoped
// state-changing operation via the license guard.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusArchived  Status = "archived"
)

// ValidStatuses is the set of statuses a super-admin may assign.
var ValidStatuses = map[Status]bool{
	StatusActive:    true,
	StatusSuspended: true,
	StatusArchived:  true,
}

// Tenant represents an isolated customer organization (a single gym).
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest holds the super-admin provisioning input: the tenant plus
// its owning user and the module enabled at creation.
type CreateRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	ModuleID      string `json:"module_id"`
	OwnerEmail    string `json:"owner_email"`
	OwnerPassword string `json:"owner_password"` //nolint:gosec // request field, not a hardcoded secret
}

// Membership links a principal to a tenant with a role.
type Membership struct {
	TenantID    string    `json:"tenant_id"`
	PrincipalID string    `json:"user_id"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoleOwner is the role granted to the principal a tenant is provisioned for.
const RoleOwner = "owner"
