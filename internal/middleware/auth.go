package middleware

import (
	"net/http"
)

// RequireUser guards wizard routes: anonymous visitors are sent to /login.
// HTMX requests get an HX-Redirect so the browser performs a full navigation
// instead of swapping the login page into a fragment target.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			if IsHTMX(r.Context()) {
				w.Header().Set("HX-Redirect", "/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
