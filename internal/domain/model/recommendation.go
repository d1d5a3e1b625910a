package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DefaultOccasion is used when a recommendation request leaves the
// occasion blank.
const DefaultOccasion = "casual"

// RecommendationRequest is the POST body for /client/recommendations/.
type RecommendationRequest struct {
	Destination string    `json:"destination"`
	Occasion    string    `json:"occasion"`
	Datetime    time.Time `json:"datetime"`
}

// Validate requires a destination and an event time.
func (r *RecommendationRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return errors.New("destination is required")
	}
	if r.Datetime.IsZero() {
		return errors.New("datetime is required")
	}
	return nil
}

// Normalize trims the destination and defaults the occasion.
func (r *RecommendationRequest) Normalize() {
	r.Destination = strings.TrimSpace(r.Destination)
	r.Occasion = strings.TrimSpace(r.Occasion)
	if r.Occasion == "" {
		r.Occasion = DefaultOccasion
	}
}

// MarshalJSON sends the event time as RFC3339 UTC, which is what the
// recommendation engine expects.
func (r RecommendationRequest) MarshalJSON() ([]byte, error) {
	type wire struct {
		Destination string `json:"destination"`
		Occasion    string `json:"occasion"`
		Datetime    string `json:"datetime"`
	}
	return json.Marshal(wire{
		Destination: r.Destination,
		Occasion:    r.Occasion,
		Datetime:    r.Datetime.UTC().Format(time.RFC3339),
	})
}

// OutfitRecommendation is one generated outfit. ProductIDs reference
// wardrobe items by numeric id.
type OutfitRecommendation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ProductIDs  []int64 `json:"product_ids"`
}

// RecommendationResponse is the envelope around generated outfits.
type RecommendationResponse struct {
	Recommendations []OutfitRecommendation `json:"recommendations"`
}
