package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller extracted from a bearer credential.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Middleware validates the Authorization header of protected routes and
// injects the caller identity into the request context.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				deny(w, "no token, authorization denied")
				return
			}

			// Expecting the standard "Bearer <token>" format
			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := tokens.Validate(tokenStr)
			if err != nil {
				deny(w, "token is not valid")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				deny(w, "token is not valid")
				return
			}

			identity := Identity{UserID: userID, Username: claims.Username}
			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), identityKey, identity)))
		})
	}
}

// FromContext retrieves the identity injected by Middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

func deny(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
