package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academly/academly/internal/domain/tenant"
)

// StatusReader reads tenant license status through the elevated
// (service-role) pool. The separate pool bypasses row-level policies so a
// suspended tenant's own members can still learn that they are suspended.
type StatusReader struct {
	pool *pgxpool.Pool
}

// NewStatusReader creates a StatusReader on the elevated pool.
func NewStatusReader(pool *pgxpool.Pool) *StatusReader {
	return &StatusReader{pool: pool}
}

// TenantStatus returns the tenant's stored status. Errors (including a
// missing row) propagate to the license guard, which resolves them to
// suspended.
func (r *StatusReader) TenantStatus(ctx context.Context, tenantID string) (tenant.Status, error) {
	var status tenant.Status
	err := r.pool.QueryRow(ctx,
		`SELECT status FROM tenants WHERE id = $1`, tenantID).Scan(&status)
	if err != nil {
		return "", notFoundWrap(err, "tenant status %s", tenantID)
	}
	return status, nil
}
