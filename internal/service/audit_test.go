package service

import (
	"context"
	"errors"
	"testing"

	"github.com/academly/academly/internal/domain/audit"
)

func TestAuditRecorder_RecordsAndPublishes(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{}
	r := NewAuditRecorder(store, pub)

	r.Record(context.Background(), "admin-1", audit.ActionChangeStatus, "t1", map[string]any{"status": "suspended"})

	if len(store.auditLog) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(store.auditLog))
	}
	e := store.auditLog[0]
	if e.ID == "" {
		t.Error("entry id not assigned")
	}
	if e.PerformedBy != "admin-1" || e.TargetID != "t1" {
		t.Errorf("entry = %+v", e)
	}
	if len(pub.subjects) != 1 || pub.subjects[0] != "audit.tenant.status" {
		t.Errorf("published subjects = %v, want [audit.tenant.status]", pub.subjects)
	}
}

func TestAuditRecorder_SwallowsStoreFailure(t *testing.T) {
	store := &mockStore{appendAuditErr: errors.New("insert failed")}
	pub := &mockPublisher{}
	r := NewAuditRecorder(store, pub)

	// Must not panic or surface the error; publish still happens.
	r.Record(context.Background(), "admin-1", audit.ActionAttachModule, "", nil)
	if len(pub.subjects) != 1 {
		t.Errorf("published subjects = %v, want the event despite the insert failure", pub.subjects)
	}
}

func TestAuditRecorder_SwallowsPublishFailure(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{err: errors.New("stream unavailable")}
	r := NewAuditRecorder(store, pub)

	r.Record(context.Background(), "admin-1", audit.ActionCreateTenant, "owner-1", nil)
	if len(store.auditLog) != 1 {
		t.Errorf("audit entries = %d, want 1 despite publish failure", len(store.auditLog))
	}
}

func TestAuditRecorder_NilPublisher(t *testing.T) {
	store := &mockStore{}
	r := NewAuditRecorder(store, nil)

	r.Record(context.Background(), "admin-1", audit.ActionToggleModule, "", map[string]any{"enabled": false})
	if len(store.auditLog) != 1 {
		t.Errorf("audit entries = %d, want 1", len(store.auditLog))
	}
}
