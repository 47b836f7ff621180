package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/tenant"
	"github.com/academly/academly/internal/port/database"
)

// LicenseGuard gates tenant-scoped operations on the tenant's subscription
// status. It reads through the elevated status reader so members of a
// suspended tenant still learn that they are suspended even when row-level
// policies hide the rest of their tenant's data.
type LicenseGuard struct {
	reader database.StatusReader
}

// NewLicenseGuard creates a license guard over the elevated status reader.
func NewLicenseGuard(reader database.StatusReader) *LicenseGuard {
	return &LicenseGuard{reader: reader}
}

// Status returns the tenant's license status. Any failure — missing row,
// query error, permission denial — resolves to suspended. No tenant id is
// ever active by default.
func (g *LicenseGuard) Status(ctx context.Context, tenantID string) tenant.Status {
	status, err := g.reader.TenantStatus(ctx, tenantID)
	if err != nil {
		slog.Warn("license status lookup failed, treating as suspended",
			"tenant_id", tenantID, "error", err)
		return tenant.StatusSuspended
	}
	if !tenant.ValidStatuses[status] {
		slog.Warn("license status unrecognized, treating as suspended",
			"tenant_id", tenantID, "status", status)
		return tenant.StatusSuspended
	}
	return status
}

// RequireActive rejects state-changing operations for any tenant whose
// license is not active. Read-only listings should call Status instead and
// pass the value through for the blocked banner.
func (g *LicenseGuard) RequireActive(ctx context.Context, tenantID string) error {
	if status := g.Status(ctx, tenantID); status != tenant.StatusActive {
		return fmt.Errorf("tenant %s is %s: %w", tenantID, status, domain.ErrLicenseInactive)
	}
	return nil
}
