package middleware

import (
	"net/http"
)

// RequireAuth restricts a route to requests with a live session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin restricts a route to super-admin sessions. The flag is
// resolved at login; a tenant member never reaches the handler regardless
// of the ids in the request.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil {
			http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
			return
		}
		if !sess.SuperAdmin {
			http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireTenant restricts a route to sessions with a selected tenant
// context. Handlers read the tenant id from the session, never from the
// request, so one tenant's routes cannot touch another's rows.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil {
			http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
			return
		}
		if _, err := sess.RequireTenant(); err != nil {
			http.Error(w, `{"error":"no context selected"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
