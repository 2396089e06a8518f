package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode marks a bearer token that could not be decoded into an
// identity. Callers route it back to the login view.
var ErrDecode = errors.New("token decode failed")

// Identity is the advisory view of the caller decoded from the bearer
// token. The signature is not verified in this layer; the backend rejects
// forged or expired tokens on every call it receives.
type Identity struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time
}

// tokenClaims mirrors the claim set issued by the backend.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeToken extracts the subject and role from a bearer token without
// verifying its signature. A malformed token or an unknown role claim fails
// with an error wrapping ErrDecode.
func DecodeToken(token string) (*Identity, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrDecode)
	}
	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	identity := &Identity{
		Subject: claims.Subject,
		Role:    role,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// Expired reports whether the token carried an exp claim that has passed.
// No local timer watches this; it is only consulted on navigation.
func (id *Identity) Expired() bool {
	return !id.ExpiresAt.IsZero() && time.Now().After(id.ExpiresAt)
}
