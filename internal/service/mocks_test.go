package service

import (
	"context"
	"sync"
	"time"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/access"
	"github.com/academly/academly/internal/domain/activity"
	"github.com/academly/academly/internal/domain/audit"
	"github.com/academly/academly/internal/domain/module"
	"github.com/academly/academly/internal/domain/principal"
	"github.com/academly/academly/internal/domain/student"
	"github.com/academly/academly/internal/domain/tenant"
	"github.com/academly/academly/internal/port/database"
	"github.com/academly/academly/internal/port/identity"
	"github.com/academly/academly/internal/port/sessionstore"
)

// Ensure the mocks implement their ports at compile time.
var (
	_ database.Store        = (*mockStore)(nil)
	_ database.StatusReader = (*mockStatusReader)(nil)
	_ identity.Gateway      = (*mockGateway)(nil)
	_ sessionstore.Store    = (*memSessionStore)(nil)
	_ EventPublisher        = (*mockPublisher)(nil)
)

// mockStore is a minimal in-memory implementation of database.Store for testing.
type mockStore struct {
	profiles    []principal.Profile
	contexts    map[string][]access.Context
	tenants     []tenant.Tenant
	memberships []tenant.Membership
	activations []module.Activation
	modules     []module.Module
	auditLog    []audit.Entry
	students    []student.Student
	activities  []activity.Activity

	// Error hooks — set these to inject failures.
	getProfileErr       error
	createProfileErr    error
	listContextsErr     error
	createTenantErr     error
	deleteTenantErr     error
	updateStatusErr     error
	createMembershipErr error
	createActivationErr error
	setActivationErr    error
	appendAuditErr      error
	createStudentErr    error
	createActivityErr   error
}

func (m *mockStore) GetProfile(_ context.Context, id string) (*principal.Profile, error) {
	if m.getProfileErr != nil {
		return nil, m.getProfileErr
	}
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			return &m.profiles[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetProfileByEmail(_ context.Context, email string) (*principal.Profile, error) {
	for i := range m.profiles {
		if m.profiles[i].Email == email {
			return &m.profiles[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateProfile(_ context.Context, p *principal.Profile) error {
	if m.createProfileErr != nil {
		return m.createProfileErr
	}
	for i := range m.profiles {
		if m.profiles[i].Email == p.Email {
			return domain.ErrConflict
		}
	}
	m.profiles = append(m.profiles, *p)
	return nil
}

func (m *mockStore) CountProfiles(_ context.Context) (int, error) {
	return len(m.profiles), nil
}

func (m *mockStore) ListAccessContexts(_ context.Context, principalID string) ([]access.Context, error) {
	if m.listContextsErr != nil {
		return nil, m.listContextsErr
	}
	return m.contexts[principalID], nil
}

func (m *mockStore) CreateTenant(_ context.Context, t *tenant.Tenant) error {
	if m.createTenantErr != nil {
		return m.createTenantErr
	}
	for i := range m.tenants {
		if m.tenants[i].Slug == t.Slug {
			return domain.ErrConflict
		}
	}
	m.tenants = append(m.tenants, *t)
	return nil
}

func (m *mockStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			return &m.tenants[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListTenants(_ context.Context) ([]tenant.Tenant, error) {
	return m.tenants, nil
}

func (m *mockStore) UpdateTenantStatus(_ context.Context, id string, status tenant.Status) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			m.tenants[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteTenant(_ context.Context, id string) error {
	if m.deleteTenantErr != nil {
		return m.deleteTenantErr
	}
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			m.tenants = append(m.tenants[:i], m.tenants[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CreateMembership(_ context.Context, mem *tenant.Membership) error {
	if m.createMembershipErr != nil {
		return m.createMembershipErr
	}
	m.memberships = append(m.memberships, *mem)
	return nil
}

func (m *mockStore) ListModules(_ context.Context) ([]module.Module, error) {
	return m.modules, nil
}

func (m *mockStore) ListTenantModules(_ context.Context, tenantID string) ([]module.Activation, error) {
	var out []module.Activation
	for _, a := range m.activations {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockStore) CreateActivation(_ context.Context, a *module.Activation) error {
	if m.createActivationErr != nil {
		return m.createActivationErr
	}
	for _, existing := range m.activations {
		if existing.TenantID == a.TenantID && existing.ModuleID == a.ModuleID {
			return domain.ErrConflict
		}
	}
	m.activations = append(m.activations, *a)
	return nil
}

func (m *mockStore) SetActivationEnabled(_ context.Context, tenantID, moduleID string, enabled bool) error {
	if m.setActivationErr != nil {
		return m.setActivationErr
	}
	for i := range m.activations {
		if m.activations[i].TenantID == tenantID && m.activations[i].ModuleID == moduleID {
			m.activations[i].Enabled = enabled
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) AppendAudit(_ context.Context, e *audit.Entry) error {
	if m.appendAuditErr != nil {
		return m.appendAuditErr
	}
	m.auditLog = append(m.auditLog, *e)
	return nil
}

func (m *mockStore) ListAudit(_ context.Context, limit int) ([]audit.Entry, error) {
	if len(m.auditLog) > limit {
		return m.auditLog[:limit], nil
	}
	return m.auditLog, nil
}

func (m *mockStore) ListStudents(_ context.Context, tenantID string) ([]student.Student, error) {
	var out []student.Student
	for _, s := range m.students {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStore) CreateStudent(_ context.Context, s *student.Student) error {
	if m.createStudentErr != nil {
		return m.createStudentErr
	}
	m.students = append(m.students, *s)
	return nil
}

func (m *mockStore) SetStudentActive(_ context.Context, tenantID, id string, active bool) error {
	for i := range m.students {
		if m.students[i].TenantID == tenantID && m.students[i].ID == id {
			m.students[i].Active = active
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) ListActivities(_ context.Context, tenantID string) ([]activity.Activity, error) {
	var out []activity.Activity
	for _, a := range m.activities {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockStore) CreateActivity(_ context.Context, a *activity.Activity) error {
	if m.createActivityErr != nil {
		return m.createActivityErr
	}
	m.activities = append(m.activities, *a)
	return nil
}

// mockStatusReader returns a fixed status (or error) for every tenant.
type mockStatusReader struct {
	status tenant.Status
	err    error
}

func (m *mockStatusReader) TenantStatus(_ context.Context, _ string) (tenant.Status, error) {
	return m.status, m.err
}

// mockGateway records created users and can simulate an existing email.
type mockGateway struct {
	createUserErr error
	nextID        string
	created       []string // emails passed to CreateUser
}

func (m *mockGateway) SignIn(_ context.Context, _, _ string) (string, error) {
	return "", identity.ErrInvalidCredentials
}

func (m *mockGateway) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	if m.createUserErr != nil {
		return "", m.createUserErr
	}
	m.created = append(m.created, email)
	if m.nextID != "" {
		return m.nextID, nil
	}
	return "user-" + email, nil
}

func (m *mockGateway) SignOut(_ context.Context, _ string) error { return nil }

// memSessionStore is a map-backed sessionstore.Store with real TTL checks.
type memSessionStore struct {
	mu      sync.Mutex
	entries map[string]memSessionEntry

	setErr error
}

type memSessionEntry struct {
	value   []byte
	expires time.Time
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{entries: make(map[string]memSessionEntry)}
}

func (s *memSessionStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expires) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *memSessionStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memSessionEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// mockPublisher captures published audit events.
type mockPublisher struct {
	subjects []string
	err      error
}

func (p *mockPublisher) Publish(_ context.Context, subject string, _ []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	return nil
}
