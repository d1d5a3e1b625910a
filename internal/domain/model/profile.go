// Package model contains the typed request/response shapes of the
// StyleGenie backend: profiles, wardrobe items, outfit recommendations,
// and the stylist directory.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
)

// Style-profile enums. The backend stores snake_case strings; empty means
// "not set".
var (
	GenderOptions    = []string{"male", "female", "non_binary", "other", "prefer_not_to_say"}
	SkinToneOptions  = []string{"fair", "light", "medium", "tan", "olive", "brown", "dark"}
	BodyShapeOptions = []string{"rectangle", "hourglass", "pear", "apple", "inverted_triangle"}
	FaceShapeOptions = []string{"oval", "round", "square", "heart", "diamond", "oblong"}
)

// ClientProfile is the style profile attached to a client account.
type ClientProfile struct {
	User        auth.User  `json:"user"`
	DateOfBirth *string    `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	SkinTone    *string    `json:"skin_tone,omitempty"`
	BodyShape   *string    `json:"body_shape,omitempty"`
	FaceShape   *string    `json:"face_shape,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// StylistProfile is the professional profile attached to a stylist account.
type StylistProfile struct {
	User            auth.User  `json:"user"`
	Bio             *string    `json:"bio,omitempty"`
	Expertise       []string   `json:"expertise,omitempty"`
	YearsExperience *int       `json:"years_experience,omitempty"`
	Rating          *float64   `json:"rating,omitempty"`
	RatingCount     *int       `json:"rating_count,omitempty"`
	EarningsTotal   *string    `json:"earnings_total,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ClientProfileUpdate is the PATCH body for /client/me/. Every field is
// always serialized; nil means an explicit null, which the backend's
// serializer requires for clearing a field.
type ClientProfileUpdate struct {
	BodyShape   *string `json:"body_shape"`
	FaceShape   *string `json:"face_shape"`
	SkinTone    *string `json:"skin_tone"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
}

// Validate checks every set field against its enum; DateOfBirth must be
// an ISO date (yyyy-mm-dd).
func (u *ClientProfileUpdate) Validate() error {
	if err := validateOption("gender", u.Gender, GenderOptions); err != nil {
		return err
	}
	if err := validateOption("skin_tone", u.SkinTone, SkinToneOptions); err != nil {
		return err
	}
	if err := validateOption("body_shape", u.BodyShape, BodyShapeOptions); err != nil {
		return err
	}
	if err := validateOption("face_shape", u.FaceShape, FaceShapeOptions); err != nil {
		return err
	}
	if u.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *u.DateOfBirth); err != nil {
			return fmt.Errorf("invalid date_of_birth %q: expected yyyy-mm-dd", *u.DateOfBirth)
		}
	}
	return nil
}

// Normalize trims whitespace and converts empty strings to explicit nulls.
func (u *ClientProfileUpdate) Normalize() {
	u.BodyShape = normalizeField(u.BodyShape)
	u.FaceShape = normalizeField(u.FaceShape)
	u.SkinTone = normalizeField(u.SkinTone)
	u.Gender = normalizeField(u.Gender)
	u.DateOfBirth = normalizeField(u.DateOfBirth)
}

// StylistProfileUpdate is the PATCH body for /stylist/me/.
type StylistProfileUpdate struct {
	Bio             string   `json:"bio"`
	Expertise       []string `json:"expertise"`
	YearsExperience *int     `json:"years_experience"`
}

// Validate rejects a negative experience figure.
func (u *StylistProfileUpdate) Validate() error {
	if u.YearsExperience != nil && *u.YearsExperience < 0 {
		return fmt.Errorf("years_experience must not be negative")
	}
	return nil
}

// Normalize trims the bio and drops empty expertise entries.
func (u *StylistProfileUpdate) Normalize() {
	u.Bio = strings.TrimSpace(u.Bio)
	kept := u.Expertise[:0]
	for _, e := range u.Expertise {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	u.Expertise = kept
}

func validateOption(field string, value *string, options []string) error {
	if value == nil || *value == "" {
		return nil
	}
	for _, opt := range options {
		if *value == opt {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (valid options: %s)", field, *value, strings.Join(options, ", "))
}

func normalizeField(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
