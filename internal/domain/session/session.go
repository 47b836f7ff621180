// Package session defines the typed server-side session state.
//
// Sessions carry the full resolved access set and the currently selected
// context as a struct rather than loose string-keyed values, so tenant ids
// are only ever read through RequireTenant.
package session

import (
	"time"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/access"
)

// Selection is the active (tenant, module) pair for a session.
type Selection struct {
	TenantID string `json:"tenant_id"`
	ModuleID string `json:"module_id"`
}

// Session is the per-principal server-side state, created at login and
// destroyed at logout or inactivity expiry.
type Session struct {
	Token       string           `json:"-"` // opaque store key, never serialized
	PrincipalID string           `json:"principal_id"`
	Email       string           `json:"email"`
	SuperAdmin  bool             `json:"super_admin"`
	Contexts    []access.Context `json:"contexts,omitempty"`
	Selected    *Selection       `json:"selected,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	LastSeenAt  time.Time        `json:"last_seen_at"`
}

// RequireTenant returns the selected tenant id. Every tenant-scoped
// read or write must go through this before touching tenant data.
func (s *Session) RequireTenant() (string, error) {
	if s.Selected == nil {
		return "", domain.ErrNoContextSelected
	}
	return s.Selected.TenantID, nil
}

// CanSelect reports whether the pair is in this session's access set.
// Super-admin sessions hold no contexts and can never select one.
func (s *Session) CanSelect(tenantID, moduleID string) bool {
	return access.Contains(s.Contexts, tenantID, moduleID)
}
