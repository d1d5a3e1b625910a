package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StylistUser is the trimmed-down account record embedded in directory
// entries.
type StylistUser struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Username       string  `json:"username"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profile_picture"`
}

// Stylist is one entry of the stylist directory.
type Stylist struct {
	ID              string       `json:"id"`
	User            StylistUser  `json:"user"`
	Bio             *string      `json:"bio"`
	Expertise       []string     `json:"expertise"`
	YearsExperience *int         `json:"years_experience"`
	Rating          *float64     `json:"rating"`
	RatingCount     *int         `json:"rating_count"`
	HourlyRate      *FlexibleNum `json:"hourly_rate"`
	Location        *string      `json:"location"`
	City            *string      `json:"city"`
	Country         *string      `json:"country"`
}

// DisplayLocation mirrors the directory's presentation rules: an explicit
// location wins, then "city, country", then a remote fallback.
func (s Stylist) DisplayLocation() string {
	if s.Location != nil && strings.TrimSpace(*s.Location) != "" {
		return *s.Location
	}
	city, country := "", ""
	if s.City != nil {
		city = strings.TrimSpace(*s.City)
	}
	if s.Country != nil {
		country = strings.TrimSpace(*s.Country)
	}
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	case country != "":
		return country
	default:
		return "Available remotely"
	}
}

// StylistList decodes both a bare array and a {"results": [...]} envelope.
type StylistList []Stylist

// UnmarshalJSON implements json.Unmarshaler.
func (l *StylistList) UnmarshalJSON(data []byte) error {
	var entries []Stylist
	if err := json.Unmarshal(data, &entries); err == nil {
		*l = entries
		return nil
	}

	var envelope struct {
		Results []Stylist `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("stylist list: unexpected shape: %w", err)
	}
	*l = envelope.Results
	return nil
}

// FlexibleNum decodes a numeric field the backend serializes
// inconsistently: as a JSON number, a quoted decimal string, or null.
type FlexibleNum float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexibleNum) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		return nil
	}
	text = strings.Trim(text, `"`)
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", text, err)
	}
	*n = FlexibleNum(parsed)
	return nil
}

// Float64 returns the plain value.
func (n FlexibleNum) Float64() float64 { return float64(n) }
