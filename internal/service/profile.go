package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stylegenie/stylegenie-go/internal/api"
	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
	"github.com/stylegenie/stylegenie-go/internal/domain/model"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Session Session      // Required: authorized-request capability
	Logger  *slog.Logger // Optional: structured logger
}

// ProfileService reads and updates the role-specific profile behind
// /{role}/me/.
type ProfileService struct {
	session Session
	logger  *slog.Logger
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(opts ProfileServiceOptions) (*ProfileService, error) {
	if opts.Session == nil {
		return nil, errors.New("Session is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "profile_service")
	}

	return &ProfileService{session: opts.Session, logger: logger}, nil
}

// ClientProfile fetches the style profile of the logged-in client.
func (s *ProfileService) ClientProfile(ctx context.Context) (*model.ClientProfile, error) {
	var profile model.ClientProfile
	if err := s.session.Do(ctx, "/client/me/", api.RequestOptions{}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// StylistProfile fetches the professional profile of the logged-in stylist.
func (s *ProfileService) StylistProfile(ctx context.Context) (*model.StylistProfile, error) {
	var profile model.StylistProfile
	if err := s.session.Do(ctx, "/stylist/me/", api.RequestOptions{}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateClientProfile patches the client style profile and refreshes the
// session's cached user record from the response.
func (s *ProfileService) UpdateClientProfile(ctx context.Context, update model.ClientProfileUpdate) (*model.ClientProfile, error) {
	if s.session.Role() != auth.RoleClient {
		return nil, fmt.Errorf("only clients can update the style profile")
	}

	update.Normalize()
	if err := update.Validate(); err != nil {
		return nil, err
	}

	var profile model.ClientProfile
	err := s.session.Do(ctx, "/client/me/", api.RequestOptions{
		Method: http.MethodPatch,
		Body:   update,
	}, &profile)
	if err != nil {
		return nil, err
	}

	s.session.UpdateUser(ctx, profile.User)
	return &profile, nil
}

// UpdateStylistProfile patches the stylist profile and refreshes the
// session's cached user record from the response.
func (s *ProfileService) UpdateStylistProfile(ctx context.Context, update model.StylistProfileUpdate) (*model.StylistProfile, error) {
	if s.session.Role() != auth.RoleStylist {
		return nil, fmt.Errorf("only stylists can update the stylist profile")
	}

	update.Normalize()
	if err := update.Validate(); err != nil {
		return nil, err
	}

	var profile model.StylistProfile
	err := s.session.Do(ctx, "/stylist/me/", api.RequestOptions{
		Method: http.MethodPatch,
		Body:   update,
	}, &profile)
	if err != nil {
		return nil, err
	}

	s.session.UpdateUser(ctx, profile.User)
	return &profile, nil
}
