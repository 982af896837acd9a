package middleware

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/auth"
)

// RequireAuth is the route gate: authenticated requests pass through, the
// rest are sent to the login screen.
func RequireAuth(authn auth.Authenticator, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authn == nil || !authn.IsAuthenticated(r) {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
