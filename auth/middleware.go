package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"beneficiarydesk/models"
)

// Authenticator is middleware that validates bearer session tokens.
type Authenticator struct {
	Secret []byte
}

func NewAuthenticator(secret []byte) *Authenticator {
	return &Authenticator{Secret: secret}
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// Middleware verifies the Authorization header and stores the caller's
// Identity in the request context. Requests without a valid token never reach
// the wrapped handler.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			deny(w, http.StatusUnauthorized, "Authorization missing")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			deny(w, http.StatusUnauthorized, "Malformed authorization header")
			return
		}

		claims, err := ParseToken(tokenString, a.Secret)
		if err != nil {
			deny(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := SetIdentity(r.Context(), FromClaims(claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a handler on the caller's role. It assumes Middleware
// already ran; a request with no identity in context is treated as
// unauthenticated rather than forbidden.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[models.NormalizeRole(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetIdentity(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "Authorization missing")
				return
			}
			if _, ok := allowed[id.Role]; !ok {
				deny(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
