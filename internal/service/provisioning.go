package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/audit"
	"github.com/academly/academly/internal/domain/module"
	"github.com/academly/academly/internal/domain/principal"
	"github.com/academly/academly/internal/domain/tenant"
	"github.com/academly/academly/internal/normalize"
	"github.com/academly/academly/internal/port/database"
	"github.com/academly/academly/internal/port/identity"
)

// ProvisioningService implements the super-admin tenant lifecycle:
// creation with compensation, status mutation, and module activation.
// Callers must already be classified as super-admin; the HTTP layer
// enforces that on every request.
type ProvisioningService struct {
	store   database.Store
	gateway identity.Gateway
	auditor *AuditRecorder
}

// NewProvisioningService creates the provisioning workflow service.
func NewProvisioningService(store database.Store, gateway identity.Gateway, auditor *AuditRecorder) *ProvisioningService {
	return &ProvisioningService{store: store, gateway: gateway, auditor: auditor}
}

// CreateTenant provisions a tenant, its owning principal, the owner
// membership, and the initial module activation, in that order. If any
// step after the tenant insert fails, the tenant row is deleted before the
// error surfaces, so no orphaned tenant without owner or module survives a
// failed attempt. Identity creation cannot be rolled back together with
// the directory rows; a reused or freshly created identity may outlive a
// failed attempt.
func (s *ProvisioningService) CreateTenant(ctx context.Context, actorID string, req tenant.CreateRequest) (*tenant.Tenant, error) {
	name := normalize.DisplayName(req.Name)
	slug := normalize.Slug(req.Slug)
	email := normalize.Email(req.OwnerEmail)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !normalize.SlugValid(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase letters, digits, and hyphens", domain.ErrValidation)
	}
	if req.ModuleID == "" {
		return nil, fmt.Errorf("%w: module_id is required", domain.ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: owner_email is required", domain.ErrValidation)
	}

	t := &tenant.Tenant{
		ID:     uuid.NewString(),
		Name:   name,
		Slug:   slug,
		Status: tenant.StatusActive,
	}
	if err := s.store.CreateTenant(ctx, t); err != nil {
		// Slug collision or store failure before any side effects:
		// nothing to compensate.
		return nil, err
	}

	ownerID, ownerReused, err := s.resolveOwner(ctx, email, req.OwnerPassword, name)
	if err != nil {
		return nil, s.compensate(ctx, t.ID, fmt.Errorf("resolve owner: %w", err))
	}

	m := &tenant.Membership{
		TenantID:    t.ID,
		PrincipalID: ownerID,
		Role:        tenant.RoleOwner,
	}
	if err := s.store.CreateMembership(ctx, m); err != nil {
		return nil, s.compensate(ctx, t.ID, fmt.Errorf("create membership: %w", err))
	}

	a := &module.Activation{
		TenantID: t.ID,
		ModuleID: req.ModuleID,
		Enabled:  true,
	}
	if err := s.store.CreateActivation(ctx, a); err != nil {
		return nil, s.compensate(ctx, t.ID, fmt.Errorf("create activation: %w", err))
	}

	s.auditor.Record(ctx, actorID, audit.ActionCreateTenant, ownerID, map[string]any{
		"tenant_id":    t.ID,
		"tenant_name":  t.Name,
		"module_id":    req.ModuleID,
		"owner_reused": ownerReused,
	})
	return t, nil
}

// resolveOwner creates the owning identity, falling back to the existing
// principal when the email is already registered. The reuse fallback keys
// off the typed ErrEmailExists sentinel, not provider error text.
func (s *ProvisioningService) resolveOwner(ctx context.Context, email, password, fullName string) (string, bool, error) {
	id, err := s.gateway.CreateUser(ctx, email, password, fullName)
	if err == nil {
		s.mirrorProfile(ctx, id, email, fullName)
		return id, false, nil
	}
	if !errors.Is(err, identity.ErrEmailExists) {
		return "", false, err
	}

	p, err := s.store.GetProfileByEmail(ctx, email)
	if err != nil {
		return "", false, fmt.Errorf("existing owner lookup: %w", err)
	}
	return p.ID, true, nil
}

// mirrorProfile inserts the directory mirror row for a freshly created
// identity. The local gateway writes its own profile row, so a conflict
// here just means the mirror already exists.
func (s *ProvisioningService) mirrorProfile(ctx context.Context, id, email, fullName string) {
	p := &principal.Profile{ID: id, Email: email, FullName: fullName}
	if err := s.store.CreateProfile(ctx, p); err != nil && !errors.Is(err, domain.ErrConflict) {
		slog.Warn("profile mirror insert failed", "email", email, "error", err)
	}
}

// compensate deletes the tenant created earlier in the same attempt and
// wraps the original error. A compensation failure is logged but never
// masks what actually went wrong.
func (s *ProvisioningService) compensate(ctx context.Context, tenantID string, cause error) error {
	if err := s.store.DeleteTenant(ctx, tenantID); err != nil {
		slog.Error("provisioning compensation failed, tenant row may be orphaned",
			"tenant_id", tenantID, "error", err)
	}
	return fmt.Errorf("%w: %w", domain.ErrProvisioningFailed, cause)
}

// ChangeStatus validates and writes a tenant's license status.
func (s *ProvisioningService) ChangeStatus(ctx context.Context, actorID, tenantID string, status tenant.Status) error {
	if !tenant.ValidStatuses[status] {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if err := s.store.UpdateTenantStatus(ctx, tenantID, status); err != nil {
		return err
	}
	s.auditor.Record(ctx, actorID, audit.ActionChangeStatus, "", map[string]any{
		"tenant_id": tenantID,
		"status":    string(status),
	})
	return nil
}

// AttachModule attaches a module to a tenant with insert-if-absent
// semantics: a duplicate attach reports attached=false with no error, so
// the caller can show an "already enabled" notice instead of a failure.
func (s *ProvisioningService) AttachModule(ctx context.Context, actorID, tenantID, moduleID string) (bool, error) {
	a := &module.Activation{TenantID: tenantID, ModuleID: moduleID, Enabled: true}
	if err := s.store.CreateActivation(ctx, a); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	s.auditor.Record(ctx, actorID, audit.ActionAttachModule, "", map[string]any{
		"tenant_id": tenantID,
		"module_id": moduleID,
	})
	return true, nil
}

// ToggleModule flips the enabled flag on an existing activation.
func (s *ProvisioningService) ToggleModule(ctx context.Context, actorID, tenantID, moduleID string, enabled bool) error {
	if err := s.store.SetActivationEnabled(ctx, tenantID, moduleID, enabled); err != nil {
		return err
	}
	s.auditor.Record(ctx, actorID, audit.ActionToggleModule, "", map[string]any{
		"tenant_id": tenantID,
		"module_id": moduleID,
		"enabled":   enabled,
	})
	return nil
}

// ListTenants returns all tenants for the admin surface.
func (s *ProvisioningService) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	return s.store.ListTenants(ctx)
}

// ListModules returns the global module catalog.
func (s *ProvisioningService) ListModules(ctx context.Context) ([]module.Module, error) {
	return s.store.ListModules(ctx)
}

// ListTenantModules returns a tenant's activations.
func (s *ProvisioningService) ListTenantModules(ctx context.Context, tenantID string) ([]module.Activation, error) {
	return s.store.ListTenantModules(ctx, tenantID)
}

// ListAuditLog returns the most recent audit entries.
func (s *ProvisioningService) ListAuditLog(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.store.ListAudit(ctx, limit)
}
