package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/shiftwise/shiftwise/server/pkg/tokens"
)

type contextKey string

const userIDKey contextKey = "userID"

// authMiddleware verifies the Authorization bearer token and stores the
// authenticated user id in the request context.
func (c *Controller) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			token = ""
		}

		claims, err := tokens.Verify(token, c.secret)
		if err != nil {
			c.logger.Debugf("unauthorized request to %s: %v", r.URL.Path, err)
			c.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID returns the authenticated user id stored by authMiddleware.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
