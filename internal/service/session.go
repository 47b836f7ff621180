package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/access"
	"github.com/academly/academly/internal/domain/session"
	"github.com/academly/academly/internal/port/sessionstore"
)

// Dashboard routes handed back to the client after login or context switch.
const (
	RouteAdminTenants  = "/admin/tenants"
	RouteSelectContext = "/dashboard/select"
	routeModulePrefix  = "/dashboard/"
)

// SessionManager owns server-side session lifecycle: creation at login,
// sliding expiration on every touch, context switching, destruction.
type SessionManager struct {
	store   sessionstore.Store
	timeout time.Duration
}

// NewSessionManager creates a session manager with the given inactivity timeout.
func NewSessionManager(store sessionstore.Store, timeout time.Duration) *SessionManager {
	return &SessionManager{store: store, timeout: timeout}
}

// Create builds a session from the resolver's classification. A single
// available context is selected immediately; several leave the session in
// the neutral state awaiting an explicit selection.
func (m *SessionManager) Create(ctx context.Context, principalID, email string, cls *access.Classification) (*session.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now().UTC()
	sess := &session.Session{
		Token:       token,
		PrincipalID: principalID,
		Email:       email,
		SuperAdmin:  cls.SuperAdmin,
		Contexts:    cls.Contexts,
		CreatedAt:   now,
		LastSeenAt:  now,
	}
	if len(cls.Contexts) == 1 {
		sess.Selected = &session.Selection{
			TenantID: cls.Contexts[0].TenantID,
			ModuleID: cls.Contexts[0].ModuleID,
		}
	}

	if err := m.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads the session for a token and slides its expiration forward.
// A missing or expired token returns ErrNotFound; callers treat that as
// an unauthenticated request.
func (m *SessionManager) Get(ctx context.Context, token string) (*session.Session, error) {
	data, ok, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	sess.Token = token

	sess.LastSeenAt = time.Now().UTC()
	if err := m.save(ctx, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SelectContext validates the requested pair against the session's access
// set and, on success, stores the selection and returns the module's entry
// route. The ids are never trusted: a pair outside the resolved list fails
// with ErrInvalidContext no matter how it was supplied.
func (m *SessionManager) SelectContext(ctx context.Context, sess *session.Session, tenantID, moduleID string) (string, error) {
	if !sess.CanSelect(tenantID, moduleID) {
		return "", domain.ErrInvalidContext
	}

	sess.Selected = &session.Selection{TenantID: tenantID, ModuleID: moduleID}
	if err := m.save(ctx, sess); err != nil {
		return "", err
	}
	return ModuleRoute(moduleName(sess.Contexts, moduleID)), nil
}

// Destroy removes the session unconditionally.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

// save serializes the session and re-sets it with a fresh TTL, which is
// what gives the inactivity window its sliding behavior.
func (m *SessionManager) save(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, sess.Token, data, m.timeout); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// LoginRoute picks the post-login redirect for a session: super-admins go
// to tenant management, a single context straight to its module dashboard,
// several to the neutral selection screen.
func LoginRoute(sess *session.Session) string {
	switch {
	case sess.SuperAdmin:
		return RouteAdminTenants
	case len(sess.Contexts) == 1:
		return ModuleRoute(sess.Contexts[0].ModuleName)
	default:
		return RouteSelectContext
	}
}

// ModuleRoute returns the dashboard entry route for a module.
func ModuleRoute(moduleName string) string {
	return routeModulePrefix + moduleName
}

func moduleName(contexts []access.Context, moduleID string) string {
	for _, c := range contexts {
		if c.ModuleID == moduleID {
			return c.ModuleName
		}
	}
	return ""
}

// generateToken returns a 32-byte random hex token for the session cookie.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
