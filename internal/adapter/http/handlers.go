package http

import (
	"net/http"

	"github.com/academly/academly/internal/adapter/otel"
	"github.com/academly/academly/internal/port/identity"
	"github.com/academly/academly/internal/service"
)

// Handlers holds the service dependencies for all HTTP handlers.
type Handlers struct {
	Resolver     *service.Resolver
	Sessions     *service.SessionManager
	Gateway      identity.Gateway
	Provisioning *service.ProvisioningService
	Students     *service.StudentService
	Activities   *service.ActivityService
	License      *service.LicenseGuard

	// Metrics is optional; nil disables instrument updates.
	Metrics *otel.Metrics

	CookieName    string
	CookieMaxAge  int
	SecureCookies bool
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
