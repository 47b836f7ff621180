package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/academly/academly/internal/domain/access"
	"github.com/academly/academly/internal/domain/tenant"
)

func (s *Store) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenants (id, name, slug, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Name, t.Slug, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return conflictWrap(err, "create tenant %s", t.Slug)
	}
	return nil
}

func (s *Store) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, slug, status, created_at, updated_at
		FROM tenants WHERE id = $1`, id)

	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	return &t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, slug, status, created_at, updated_at
		FROM tenants ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (s *Store) UpdateTenantStatus(ctx context.Context, id string, status tenant.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	return execExpectOne(tag, err, "update tenant status %s", id)
}

// DeleteTenant removes a tenant row. Used only as provisioning compensation;
// membership and activation rows cascade.
func (s *Store) DeleteTenant(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete tenant %s", id)
}

func (s *Store) CreateMembership(ctx context.Context, m *tenant.Membership) error {
	m.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenant_members (tenant_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)`,
		m.TenantID, m.PrincipalID, m.Role, m.CreatedAt,
	)
	if err != nil {
		return conflictWrap(err, "create membership %s/%s", m.TenantID, m.PrincipalID)
	}
	return nil
}

// ListAccessContexts computes the cross product of a principal's memberships
// and the enabled module activations of those tenants, with display names
// joined in. One round-trip; the resolver consumes the result as-is.
func (s *Store) ListAccessContexts(ctx context.Context, principalID string) ([]access.Context, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.id, t.name, m.id, m.name, tm.role
		FROM tenant_members tm
		JOIN tenants t ON t.id = tm.tenant_id
		JOIN tenant_modules tmo ON tmo.tenant_id = tm.tenant_id AND tmo.is_enabled
		JOIN modules m ON m.id = tmo.module_id
		WHERE tm.user_id = $1
		ORDER BY t.name, m.name`, principalID)
	if err != nil {
		return nil, fmt.Errorf("list access contexts: %w", err)
	}
	defer rows.Close()

	var contexts []access.Context
	for rows.Next() {
		var c access.Context
		if err := rows.Scan(&c.TenantID, &c.TenantName, &c.ModuleID, &c.ModuleName, &c.Role); err != nil {
			return nil, fmt.Errorf("scan access context: %w", err)
		}
		contexts = append(contexts, c)
	}
	return contexts, rows.Err()
}
