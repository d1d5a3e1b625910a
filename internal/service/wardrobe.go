package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/stylegenie/stylegenie-go/internal/api"
	"github.com/stylegenie/stylegenie-go/internal/domain/model"
)

// WardrobeServiceOptions groups dependencies for WardrobeService.
type WardrobeServiceOptions struct {
	Session Session      // Required: authorized-request capability
	Logger  *slog.Logger // Optional: structured logger
}

// WardrobeService manages the client's digital wardrobe. The wardrobe is a
// client-only resource, so every path is under /client/.
type WardrobeService struct {
	session Session
	logger  *slog.Logger
}

// NewWardrobeService constructs a new WardrobeService.
func NewWardrobeService(opts WardrobeServiceOptions) (*WardrobeService, error) {
	if opts.Session == nil {
		return nil, errors.New("Session is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "wardrobe_service")
	}

	return &WardrobeService{session: opts.Session, logger: logger}, nil
}

// List fetches every wardrobe item.
func (s *WardrobeService) List(ctx context.Context) ([]model.WardrobeItem, error) {
	var list model.WardrobeList
	if err := s.session.Do(ctx, "/client/wardrobe/", api.RequestOptions{}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get fetches one wardrobe item by id.
func (s *WardrobeService) Get(ctx context.Context, id string) (*model.WardrobeItem, error) {
	if id == "" {
		return nil, errors.New("wardrobe item id is required")
	}

	var item model.WardrobeItem
	if err := s.session.Do(ctx, itemPath(id), api.RequestOptions{}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create adds a garment to the wardrobe.
func (s *WardrobeService) Create(ctx context.Context, req model.WardrobeItemRequest) (*model.WardrobeItem, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var item model.WardrobeItem
	err := s.session.Do(ctx, "/client/wardrobe/", api.RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update patches an existing wardrobe item.
func (s *WardrobeService) Update(ctx context.Context, id string, req model.WardrobeItemRequest) (*model.WardrobeItem, error) {
	if id == "" {
		return nil, errors.New("wardrobe item id is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var item model.WardrobeItem
	err := s.session.Do(ctx, itemPath(id), api.RequestOptions{
		Method: http.MethodPatch,
		Body:   req,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a wardrobe item.
func (s *WardrobeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("wardrobe item id is required")
	}
	return s.session.Do(ctx, itemPath(id), api.RequestOptions{Method: http.MethodDelete}, nil)
}

func itemPath(id string) string {
	return fmt.Sprintf("/client/wardrobe/%s/", url.PathEscape(id))
}
