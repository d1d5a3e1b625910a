package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/stylegenie/stylegenie-go/internal/api"
	"github.com/stylegenie/stylegenie-go/internal/domain/model"
)

// StylistServiceOptions groups dependencies for StylistService.
type StylistServiceOptions struct {
	Session Session      // Required: authorized-request capability
	Logger  *slog.Logger // Optional: structured logger
}

// StylistService browses the stylist directory exposed to clients.
type StylistService struct {
	session Session
	logger  *slog.Logger
}

// NewStylistService constructs a new StylistService.
func NewStylistService(opts StylistServiceOptions) (*StylistService, error) {
	if opts.Session == nil {
		return nil, errors.New("Session is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "stylist_service")
	}

	return &StylistService{session: opts.Session, logger: logger}, nil
}

// List fetches the available stylists.
func (s *StylistService) List(ctx context.Context) ([]model.Stylist, error) {
	var list model.StylistList
	if err := s.session.Do(ctx, "/client/stylists/", api.RequestOptions{}, &list); err != nil {
		return nil, err
	}
	return list, nil
}
