package middleware

import (
	"net/http"

	"straightenup/internal/application/authz"
)

// RequireAction gates a handler on the caller's role. It assumes UserAuth
// ran earlier in the chain; an unauthenticated request gets 401, an
// authenticated one without the capability gets 403.
func RequireAction(action authz.Action, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := CurrentProfile(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !authz.Can(p.Role, action) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
