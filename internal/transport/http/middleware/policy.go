package middleware

import (
	"net/http"

	"github.com/otp-auth-api/internal/domain"
)

// RequireAction returns middleware that consults the policy table for the
// caller's role. Routes declare the action they guard instead of listing
// role names.
func RequireAction(action domain.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !domain.Allow(claims.Role, action) {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
