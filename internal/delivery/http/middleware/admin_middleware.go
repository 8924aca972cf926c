package middleware

import (
	"net/http"

	"storefront-bff/pkg/utils"
)

// AdminMiddleware ensures the authenticated session has the 'admin' role.
// MUST be used AFTER AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if sess == nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No session found in context")
			return
		}

		if !sess.IsAdmin() {
			utils.WriteError(w, http.StatusForbidden, "Forbidden: Admins only")
			return
		}

		next.ServeHTTP(w, r)
	})
}
