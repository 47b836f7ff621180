package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/academly/academly/internal/domain/audit"
	"github.com/academly/academly/internal/port/database"
)

// EventPublisher is the optional audit event stream. Satisfied by the NATS
// adapter; nil disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// AuditRecorder appends audit entries for privileged mutations. Recording
// is best-effort end to end: a failed insert or publish is logged and
// swallowed so auditing never blocks the operation being audited.
type AuditRecorder struct {
	store     database.Store
	publisher EventPublisher
}

// NewAuditRecorder creates an audit recorder. publisher may be nil.
func NewAuditRecorder(store database.Store, publisher EventPublisher) *AuditRecorder {
	return &AuditRecorder{store: store, publisher: publisher}
}

// Record writes one entry. Every privileged mutation goes through here:
// tenant creation, status changes, module attaches and toggles.
func (r *AuditRecorder) Record(ctx context.Context, actorID, action, targetID string, details map[string]any) {
	entry := &audit.Entry{
		ID:          uuid.NewString(),
		PerformedBy: actorID,
		Action:      action,
		TargetID:    targetID,
		Details:     details,
	}

	if err := r.store.AppendAudit(ctx, entry); err != nil {
		slog.Warn("audit append failed", "action", action, "actor", actorID, "error", err)
	}

	if r.publisher == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		slog.Warn("audit event encode failed", "action", action, "error", err)
		return
	}
	if err := r.publisher.Publish(ctx, "audit."+action, data); err != nil {
		slog.Warn("audit event publish failed", "action", action, "error", err)
	}
}
