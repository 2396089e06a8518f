package session

import (
	"context"
	"net/http"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// IdentityKey is the context key for the decoded identity
	IdentityKey contextKey = "identity"
	// TokenKey is the context key for the raw bearer token
	TokenKey contextKey = "token"
)

// IdentityFromContext extracts the decoded identity from the request context
func IdentityFromContext(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

// TokenFromContext extracts the raw bearer token from the request context
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(TokenKey).(string); ok {
		return token
	}
	return ""
}

// RequireRole guards a route behind the given role set. Evaluated
// synchronously on each navigation: with no decodable session the request
// is redirected to the login view; with a session whose role is not in the
// set it is redirected to the unauthorized view; otherwise the wrapped
// handler renders with the identity and token placed in the context.
//
// This is a UX affordance, not a security boundary: the backend
// independently rejects unauthorized calls, and this layer trusts it to.
func RequireRole(store *Store, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := store.Current(r)
			if identity == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if !identity.Role.In(roles...) {
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
				return
			}

			token, _ := store.Token(r)
			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
