package middleware

import (
	"context"
	"net/http"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"
	"storefront-bff/pkg/utils"
)

// AuthMiddleware turns the bearer token into an explicit *domain.Session on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid or missing token")
			return
		}

		sess := &domain.Session{
			ID:     claims.SessionID,
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
			Token:  claims.Token,
		}

		ctx := context.WithValue(r.Context(), domain.SessionContextKey, sess)

		l := logger.WithUserID(*logger.WithContext(ctx), sess.UserID)
		ctx = logger.NewContext(ctx, &l)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFrom returns the session set by AuthMiddleware, or nil.
func SessionFrom(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(domain.SessionContextKey).(*domain.Session)
	return sess
}
