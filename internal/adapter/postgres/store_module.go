package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/academly/academly/internal/domain/module"
)

func (s *Store) ListModules(ctx context.Context) ([]module.Module, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at FROM modules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var modules []module.Module
	for rows.Next() {
		var m module.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

func (s *Store) ListTenantModules(ctx context.Context, tenantID string) ([]module.Activation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT tenant_id, module_id, is_enabled, created_at
		FROM tenant_modules WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list tenant modules %s: %w", tenantID, err)
	}
	defer rows.Close()

	var activations []module.Activation
	for rows.Next() {
		var a module.Activation
		if err := rows.Scan(&a.TenantID, &a.ModuleID, &a.Enabled, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activation: %w", err)
		}
		activations = append(activations, a)
	}
	return activations, rows.Err()
}

func (s *Store) CreateActivation(ctx context.Context, a *module.Activation) error {
	a.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenant_modules (tenant_id, module_id, is_enabled, created_at)
		VALUES ($1, $2, $3, $4)`,
		a.TenantID, a.ModuleID, a.Enabled, a.CreatedAt,
	)
	if err != nil {
		return conflictWrap(err, "create activation %s/%s", a.TenantID, a.ModuleID)
	}
	return nil
}

func (s *Store) SetActivationEnabled(ctx context.Context, tenantID, moduleID string, enabled bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tenant_modules SET is_enabled = $3
		WHERE tenant_id = $1 AND module_id = $2`,
		tenantID, moduleID, enabled)
	return execExpectOne(tag, err, "set activation %s/%s", tenantID, moduleID)
}
