package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/access"
	"github.com/academly/academly/internal/domain/session"
	"github.com/academly/academly/internal/middleware"
	"github.com/academly/academly/internal/port/identity"
	"github.com/academly/academly/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Redirect   string           `json:"redirect"`
	SuperAdmin bool             `json:"super_admin"`
	Contexts   []access.Context `json:"contexts,omitempty"`
}

// Login handles POST /api/v1/auth/login. Credential failures and unknown
// emails produce the same generic message so the endpoint cannot be used
// to enumerate which emails are registered.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[loginRequest](w, r)
	if !ok {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	principalID, err := h.Gateway.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		// Only a definitive rejection gets the generic notice. An
		// unreachable gateway is an infrastructure failure, never a
		// statement about the credentials.
		if !errors.Is(err, identity.ErrInvalidCredentials) {
			slog.Error("identity gateway sign-in failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		slog.Debug("login rejected", "email", req.Email, "error", err)
		h.countLoginRejected(r)
		writeError(w, http.StatusUnauthorized, "incorrect credentials")
		return
	}

	cls, err := h.Resolver.Resolve(r.Context(), principalID)
	if err != nil {
		if errors.Is(err, domain.ErrNoAccess) {
			h.countLoginRejected(r)
		}
		writeDomainError(w, err, "")
		return
	}

	sess, err := h.Sessions.Create(r.Context(), principalID, req.Email, cls)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	h.setSessionCookie(w, sess.Token)

	if h.Metrics != nil {
		h.Metrics.LoginsSucceeded.Add(r.Context(), 1)
	}
	resp := loginResponse{
		Redirect:   service.LoginRoute(sess),
		SuperAdmin: sess.SuperAdmin,
	}
	if len(sess.Contexts) > 1 {
		resp.Contexts = sess.Contexts
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout. The local session always dies;
// upstream sign-out is best-effort.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess != nil {
		if err := h.Sessions.Destroy(r.Context(), sess.Token); err != nil {
			slog.Warn("session destroy failed", "error", err)
		}
		if err := h.Gateway.SignOut(r.Context(), sess.PrincipalID); err != nil {
			slog.Warn("upstream sign-out failed", "principal", sess.PrincipalID, "error", err)
		}
	}
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/login"})
}

type selectContextRequest struct {
	TenantID string `json:"tenant_id"`
	ModuleID string `json:"module_id"`
}

// SelectContext handles POST /api/v1/context.
func (h *Handlers) SelectContext(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	req, ok := readJSON[selectContextRequest](w, r)
	if !ok {
		return
	}
	if req.TenantID == "" || req.ModuleID == "" {
		writeError(w, http.StatusBadRequest, "tenant_id and module_id are required")
		return
	}

	route, err := h.Sessions.SelectContext(r.Context(), sess, req.TenantID, req.ModuleID)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	if h.Metrics != nil {
		h.Metrics.ContextSwitches.Add(r.Context(), 1)
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect": route})
}

type meResponse struct {
	PrincipalID string             `json:"principal_id"`
	Email       string             `json:"email"`
	SuperAdmin  bool               `json:"super_admin"`
	Contexts    []access.Context   `json:"contexts"`
	Selected    *session.Selection `json:"selected,omitempty"`
}

// Me handles GET /api/v1/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, meResponse{
		PrincipalID: sess.PrincipalID,
		Email:       sess.Email,
		SuperAdmin:  sess.SuperAdmin,
		Contexts:    sess.Contexts,
		Selected:    sess.Selected,
	})
}

func (h *Handlers) countLoginRejected(r *http.Request) {
	if h.Metrics != nil {
		h.Metrics.LoginsRejected.Add(r.Context(), 1)
	}
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   h.CookieMaxAge,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
