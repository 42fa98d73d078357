// Package auth resolves bearer tokens to caller identities.
package auth

import (
	"errors"
	"fmt"
)

// Role names the privilege level of an identity
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a claim value to a Role. Anything other than admin is user.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrTokenExpired    = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrJWKSFetch       = errors.New("failed to fetch JWKS")
)

// Identity is the authenticated caller
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// DevIdentity is the identity granted to the development token
var DevIdentity = Identity{ID: "dev-user-001", Role: RoleAdmin}
