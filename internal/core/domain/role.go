package domain

import "fmt"

// Role is the closed set of roles a user can hold, either as a user-level default
// or inside an organisation.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleMember:
		return true
	default:
		return false
	}
}

// ParseRole converts raw input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Satisfies reports whether a holder of r may perform an action that requires required.
func (r Role) Satisfies(required Role) bool {
	switch required {
	case RoleMember:
		return r == RoleMember || r == RoleOwner
	case RoleOwner:
		return r == RoleOwner
	default:
		return false
	}
}
