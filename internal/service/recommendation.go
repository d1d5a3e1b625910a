package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stylegenie/stylegenie-go/internal/api"
	"github.com/stylegenie/stylegenie-go/internal/domain/model"
)

// hydrationConcurrency bounds how many wardrobe lookups run in parallel
// while resolving recommended product ids.
const hydrationConcurrency = 4

// RecommendationServiceOptions groups dependencies for RecommendationService.
type RecommendationServiceOptions struct {
	Session  Session          // Required: authorized-request capability
	Wardrobe *WardrobeService // Required: resolves recommended product ids
	Logger   *slog.Logger     // Optional: structured logger
}

// RecommendationService requests outfit recommendations for an upcoming
// trip or event and resolves the referenced wardrobe items.
type RecommendationService struct {
	session  Session
	wardrobe *WardrobeService
	logger   *slog.Logger
}

// NewRecommendationService constructs a new RecommendationService.
func NewRecommendationService(opts RecommendationServiceOptions) (*RecommendationService, error) {
	if opts.Session == nil {
		return nil, errors.New("Session is required")
	}
	if opts.Wardrobe == nil {
		return nil, errors.New("Wardrobe is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "recommendation_service")
	}

	return &RecommendationService{
		session:  opts.Session,
		wardrobe: opts.Wardrobe,
		logger:   logger,
	}, nil
}

// Outfit is a recommended outfit with its product references resolved to
// wardrobe items. Items the backend referenced but that no longer exist in
// the wardrobe are dropped from Items and kept only in ProductIDs.
type Outfit struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ProductIDs  []int64              `json:"product_ids"`
	Items       []model.WardrobeItem `json:"items"`
}

// Recommend asks the backend for outfit recommendations.
func (s *RecommendationService) Recommend(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp model.RecommendationResponse
	err := s.session.Do(ctx, "/client/recommendations/", api.RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecommendOutfits requests recommendations and hydrates each outfit's
// product ids into full wardrobe items. Lookups run concurrently with a
// fixed bound; a missing item is tolerated, any other failure aborts.
func (s *RecommendationService) RecommendOutfits(ctx context.Context, req model.RecommendationRequest) ([]Outfit, error) {
	resp, err := s.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, resp.Recommendations)
}

func (s *RecommendationService) hydrate(ctx context.Context, recs []model.OutfitRecommendation) ([]Outfit, error) {
	outfits := make([]Outfit, len(recs))

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(hydrationConcurrency)

	for i, rec := range recs {
		outfits[i] = Outfit{
			Name:        rec.Name,
			Description: rec.Description,
			ProductIDs:  rec.ProductIDs,
			Items:       []model.WardrobeItem{},
		}

		for _, id := range rec.ProductIDs {
			i, id := i, id
			group.Go(func() error {
				item, err := s.lookup(ctx, id)
				if err != nil {
					return err
				}
				if item == nil {
					return nil
				}
				mu.Lock()
				outfits[i].Items = append(outfits[i].Items, *item)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return outfits, nil
}

// lookup resolves one product id. A 404 means the garment was removed from
// the wardrobe after the recommendation was computed; it is skipped without
// failing the whole hydration.
func (s *RecommendationService) lookup(ctx context.Context, id int64) (*model.WardrobeItem, error) {
	item, err := s.wardrobe.Get(ctx, model.FormatItemID(id))
	if err != nil {
		if api.IsStatus(err, http.StatusNotFound) {
			if s.logger != nil {
				s.logger.Debug("recommended item missing from wardrobe", "item_id", id)
			}
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}
