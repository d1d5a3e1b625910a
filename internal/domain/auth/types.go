// Package auth contains domain-level types for the StyleGenie session:
// roles, the authenticated user record, the token pair, and the persisted
// session state. It is pure and free of transport/storage concerns.
package auth

import (
	"fmt"
	"strings"
)

// Role represents the account role a session is scoped to.
// The backend namespaces its auth endpoints by role, so the role doubles
// as a URL segment. Keep string form for easy persistence.
type Role string

const (
	RoleClient  Role = "client"
	RoleStylist Role = "stylist"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleStylist
}

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q (valid options: client, stylist)", s)
	}
	return r, nil
}

// User is the account record returned by the backend on login and carried
// in profile responses. Field names follow the backend's JSON contract.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Role           Role   `json:"role"`
	Status         string `json:"status"`
	Phone          string `json:"phone,omitempty"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// DisplayName returns the friendliest non-empty identifier for the user.
func (u User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// TokenPair is the access/refresh credential pair issued on login.
// The access token is short-lived; the refresh token outlives it and is
// exchanged for new access tokens.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// State is the session triple persisted as one atomic unit.
// Tokens absent means logged out; User and Role are only meaningful while
// Tokens is present.
type State struct {
	User   *User      `json:"user"`
	Tokens *TokenPair `json:"tokens"`
	Role   Role       `json:"role,omitempty"`
}

// IsAuthenticated reports whether the state carries a usable access token.
// This is the single definition of "logged in" for the whole client.
func (s State) IsAuthenticated() bool {
	return s.Tokens != nil && s.Tokens.Access != ""
}
