package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WardrobeItem is one garment in a client's digital wardrobe.
type WardrobeItem struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	UserEmail   string    `json:"user_email"`
	ImageURL    string    `json:"image_url"`
	Title       string    `json:"title"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FormatItemID renders a numeric product reference as the path id the
// wardrobe endpoints expect.
func FormatItemID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// WardrobeList decodes both list shapes the backend produces: a bare JSON
// array and a paginated {"results": [...]} envelope.
type WardrobeList []WardrobeItem

// UnmarshalJSON implements json.Unmarshaler.
func (l *WardrobeList) UnmarshalJSON(data []byte) error {
	var items []WardrobeItem
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var envelope struct {
		Results []WardrobeItem `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("wardrobe list: unexpected shape: %w", err)
	}
	*l = envelope.Results
	return nil
}

// WardrobeItemRequest is the POST/PATCH body for wardrobe items.
// Description is always serialized so clearing it sends an explicit null.
type WardrobeItemRequest struct {
	ImageURL    string  `json:"image_url"`
	Title       string  `json:"title"`
	Color       string  `json:"color"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
}

// Validate checks the required fields.
func (r *WardrobeItemRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.Color) == "" {
		return errors.New("color is required")
	}
	if strings.TrimSpace(r.ImageURL) == "" {
		return errors.New("image_url is required")
	}
	return nil
}

// Normalize trims the text fields and nulls an empty description.
func (r *WardrobeItemRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Color = strings.TrimSpace(r.Color)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Description = normalizeField(r.Description)
}
