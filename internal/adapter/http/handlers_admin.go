package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/tenant"
	"github.com/academly/academly/internal/middleware"
)

// ListTenants handles GET /api/v1/admin/tenants.
func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.Provisioning.ListTenants(r.Context())
	if err != nil {
		writeDomainError(w, err, "tenants not found")
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

// CreateTenant handles POST /api/v1/admin/tenants.
func (h *Handlers) CreateTenant(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	req, ok := readJSON[tenant.CreateRequest](w, r)
	if !ok {
		return
	}

	t, err := h.Provisioning.CreateTenant(r.Context(), sess.PrincipalID, req)
	if err != nil {
		if errors.Is(err, domain.ErrProvisioningFailed) && h.Metrics != nil {
			h.Metrics.ProvisioningFailed.Add(r.Context(), 1)
		}
		writeDomainError(w, err, "")
		return
	}
	if h.Metrics != nil {
		h.Metrics.TenantsProvisioned.Add(r.Context(), 1)
	}
	writeJSON(w, http.StatusCreated, t)
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeTenantStatus handles POST /api/v1/admin/tenants/{id}/status.
func (h *Handlers) ChangeTenantStatus(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	tenantID := urlParam(r, "id")
	req, ok := readJSON[changeStatusRequest](w, r)
	if !ok {
		return
	}

	err := h.Provisioning.ChangeStatus(r.Context(), sess.PrincipalID, tenantID, tenant.Status(req.Status))
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// ListTenantModules handles GET /api/v1/admin/tenants/{id}/modules.
func (h *Handlers) ListTenantModules(w http.ResponseWriter, r *http.Request) {
	activations, err := h.Provisioning.ListTenantModules(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, activations)
}

type attachModuleRequest struct {
	ModuleID string `json:"module_id"`
}

// AttachTenantModule handles POST /api/v1/admin/tenants/{id}/modules.
func (h *Handlers) AttachTenantModule(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	tenantID := urlParam(r, "id")
	req, ok := readJSON[attachModuleRequest](w, r)
	if !ok {
		return
	}
	if req.ModuleID == "" {
		writeError(w, http.StatusBadRequest, "module_id is required")
		return
	}

	attached, err := h.Provisioning.AttachModule(r.Context(), sess.PrincipalID, tenantID, req.ModuleID)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	if !attached {
		writeJSON(w, http.StatusOK, map[string]string{"result": "already enabled"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"result": "attached"})
}

type toggleModuleRequest struct {
	Enabled bool `json:"enabled"`
}

// ToggleTenantModule handles PUT /api/v1/admin/tenants/{id}/modules/{moduleID}.
func (h *Handlers) ToggleTenantModule(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	req, ok := readJSON[toggleModuleRequest](w, r)
	if !ok {
		return
	}

	err := h.Provisioning.ToggleModule(r.Context(), sess.PrincipalID, urlParam(r, "id"), urlParam(r, "moduleID"), req.Enabled)
	if err != nil {
		writeDomainError(w, err, "activation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": req.Enabled})
}

// ListModules handles GET /api/v1/admin/modules.
func (h *Handlers) ListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Provisioning.ListModules(r.Context())
	if err != nil {
		writeDomainError(w, err, "modules not found")
		return
	}
	writeJSON(w, http.StatusOK, modules)
}

// ListAudit handles GET /api/v1/admin/audit?limit=N.
func (h *Handlers) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.Provisioning.ListAuditLog(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err, "audit log not found")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
