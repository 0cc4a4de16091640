package auth

import "context"

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const identityKey ContextKey = "identity"

// Identity is the authenticated caller for a request. It is injected into the
// request context by the middleware and read back by handlers, so nothing in
// the request path depends on shared mutable auth state.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// FromClaims builds an Identity from verified token claims.
func FromClaims(claims *Claims) *Identity {
	return &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// GetIdentity retrieves the Identity from context.
func GetIdentity(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// SetIdentity stores the Identity in context.
func SetIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
