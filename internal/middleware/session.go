// Package middleware provides session loading and access-gate middleware
// for the HTTP surface.
package middleware

import (
	"context"
	"net/http"

	"github.com/academly/academly/internal/domain/session"
	"github.com/academly/academly/internal/service"
)

type sessionCtxKey struct{}

// Session returns middleware that loads the session identified by the
// cookie and injects it into the request context. Requests without a
// valid session pass through with no session attached; the gates decide
// whether that matters for the route.
func Session(mgr *service.SessionManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := mgr.Get(r.Context(), c.Value)
			if err != nil {
				// Expired or unknown token: clear the stale cookie and
				// continue unauthenticated.
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session attached to the request, or nil
// for an unauthenticated request.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*session.Session)
	return sess
}

// WithSession injects a session into the context. Exported for handler
// tests that bypass the cookie path.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sess)
}
