// Package database defines the directory store port (interface).
package database

import (
	"context"

	"github.com/academly/academly/internal/domain/access"
	"github.com/academly/academly/internal/domain/activity"
	"github.com/academly/academly/internal/domain/audit"
	"github.com/academly/academly/internal/domain/module"
	"github.com/academly/academly/internal/domain/principal"
	"github.com/academly/academly/internal/domain/student"
	"github.com/academly/academly/internal/domain/tenant"
)

// Store is the port interface for directory store operations.
type Store interface {
	// Profiles
	GetProfile(ctx context.Context, id string) (*principal.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*principal.Profile, error)
	CreateProfile(ctx context.Context, p *principal.Profile) error
	CountProfiles(ctx context.Context) (int, error)

	// Access resolution
	ListAccessContexts(ctx context.Context, principalID string) ([]access.Context, error)

	// Tenants
	CreateTenant(ctx context.Context, t *tenant.Tenant) error
	GetTenant(ctx context.Context, id string) (*tenant.Tenant, error)
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	UpdateTenantStatus(ctx context.Context, id string, status tenant.Status) error
	DeleteTenant(ctx context.Context, id string) error

	// Memberships
	CreateMembership(ctx context.Context, m *tenant.Membership) error

	// Module catalog and activations
	ListModules(ctx context.Context) ([]module.Module, error)
	ListTenantModules(ctx context.Context, tenantID string) ([]module.Activation, error)
	CreateActivation(ctx context.Context, a *module.Activation) error
	SetActivationEnabled(ctx context.Context, tenantID, moduleID string, enabled bool) error

	// Audit log
	AppendAudit(ctx context.Context, e *audit.Entry) error
	ListAudit(ctx context.Context, limit int) ([]audit.Entry, error)

	// Students
	ListStudents(ctx context.Context, tenantID string) ([]student.Student, error)
	CreateStudent(ctx context.Context, s *student.Student) error
	SetStudentActive(ctx context.Context, tenantID, id string, active bool) error

	// Activities
	ListActivities(ctx context.Context, tenantID string) ([]activity.Activity, error)
	CreateActivity(ctx context.Context, a *activity.Activity) error
}

// StatusReader is the elevated (service-role) view used by the license
// guard. Kept separate from Store so the trust boundary is explicit in
// constructor signatures.
type StatusReader interface {
	TenantStatus(ctx context.Context, tenantID string) (tenant.Status, error)
}
