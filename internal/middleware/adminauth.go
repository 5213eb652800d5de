package middleware

import (
	"context"
	"net/http"

	"globtek-backend/internal/auth"
	"globtek-backend/internal/transport"
)

type sessionKey struct{}

// AdminAuth is the server-side gate for /admin routes: the session is checked
// before any admin handler runs. An optional static key header is accepted for
// operational tooling.
func AdminAuth(adminKey string, manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" && manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}

			if adminKey != "" && r.Header.Get("X-Admin-Key") == adminKey {
				next.ServeHTTP(w, r)
				return
			}

			if manager != nil {
				cookie, err := r.Cookie("gt_access")
				if err == nil && cookie.Value != "" {
					claims, err := manager.Parse(cookie.Value)
					if err == nil && claims.Role == "admin" && claims.TokenType == auth.TokenTypeAccess {
						ctx := context.WithValue(r.Context(), sessionKey{}, claims.Session())
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		})
	}
}

func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	if v := ctx.Value(sessionKey{}); v != nil {
		if s, ok := v.(auth.Session); ok {
			return s, true
		}
	}
	return auth.Session{}, false
}
