package session

import "fmt"

// Role is the closed set of authorization tags understood by this layer.
// Capability checks switch exhaustively over it instead of comparing raw
// claim strings.
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

// ParseRole maps a token claim value onto the Role enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Label returns the human-readable form used in rendered views.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	}
	return string(r)
}

// CanManageAssets reports whether the role may create, edit, delete, and
// reassign assets. Advisory only; the backend enforces this independently.
func (r Role) CanManageAssets() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	}
	return false
}

// In reports whether r is one of the given roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
