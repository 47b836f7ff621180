// Package audit defines the append-only audit log entry.
package audit

import "time"

// Privileged mutation action tags.
const (
	ActionCreateTenant = "tenant.create"
	ActionChangeStatus = "tenant.status"
	ActionAttachModule = "tenant.module.attach"
	ActionToggleModule = "tenant.module.toggle"
)

// Entry records a privileged mutation. Writes are best-effort: a failed
// audit insert is logged and swallowed, never blocking the primary operation.
type Entry struct {
	ID          string         `json:"id"`
	PerformedBy string         `json:"performed_by"`
	Action      string         `json:"action"`
	TargetID    string         `json:"target_user_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
