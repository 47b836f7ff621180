// Package module defines the global feature-module catalog and per-tenant
// activations.
package module

import "time"

// Module is a catalog entry for a pluggable feature area (e.g. "academia").
// Globally defined, not tenant-owned.
type Module struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Activation attaches a module to a tenant. Absence means "not available";
// presence with Enabled=false means explicitly suspended.
type Activation struct {
	TenantID  string    `json:"tenant_id"`
	ModuleID  string    `json:"module_id"`
	Enabled   bool      `json:"is_enabled"`
	CreatedAt time.Time `json:"created_at"`
}
