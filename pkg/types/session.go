package types

import "strings"

// Role is the storefront role carried by a resolved session.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a raw role string; unknown values map to CUSTOMER,
// matching the backend's default role for new accounts.
func ParseRole(raw string) Role {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.IsValid() {
		return RoleCustomer
	}
	return role
}

// Session is the externally resolved identity for the current request.
// The gateway never mints or mutates it; the auth backend owns it.
type Session struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}
