// Package service contains the typed clients for the backend's
// collaborator endpoints: profiles, wardrobe, recommendations, the stylist
// directory, and account operations. Every call goes through the session's
// authorized-request contract and inherits its refresh-and-retry behavior.
package service

import (
	"context"

	"github.com/stylegenie/stylegenie-go/internal/api"
	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
)

// Session is the slice of the session manager the services depend on.
type Session interface {
	// Do executes an authorized request, refreshing the access token once
	// on 401.
	Do(ctx context.Context, path string, opts api.RequestOptions, out any) error
	// Role returns the effective role of the current session.
	Role() auth.Role
	// UpdateUser replaces the cached user record after richer profile data
	// arrives.
	UpdateUser(ctx context.Context, user auth.User)
}
