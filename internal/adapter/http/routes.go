package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/academly/academly/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router. The
// session middleware must already be installed by the caller; the route
// groups here only add the access gates.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication: login is the only route open to anonymous
		// requests; logout works with or without a live session so a
		// stale cookie can still be cleared.
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", h.Me)
			r.Post("/context", h.SelectContext)
		})

		// Platform administration.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireSuperAdmin)
			r.Get("/tenants", h.ListTenants)
			r.Post("/tenants", h.CreateTenant)
			r.Post("/tenants/{id}/status", h.ChangeTenantStatus)
			r.Get("/tenants/{id}/modules", h.ListTenantModules)
			r.Post("/tenants/{id}/modules", h.AttachTenantModule)
			r.Put("/tenants/{id}/modules/{moduleID}", h.ToggleTenantModule)
			r.Get("/modules", h.ListModules)
			r.Get("/audit", h.ListAudit)
		})

		// Tenant-scoped dashboard API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTenant)
			r.Get("/students", h.ListStudents)
			r.Post("/students", h.CreateStudent)
			r.Post("/students/{id}/suspend", h.SetStudentActive)
			r.Get("/activities", h.ListActivities)
			r.Post("/activities", h.CreateActivity)
		})
	})
}
