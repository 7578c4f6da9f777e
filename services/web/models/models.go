package models

import (
	"errors"
	"fmt"
	"strings"
)

// Coordinates are carried with every spot but not used by any logic.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Owner is the host of a parking spot.
type Owner struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// ParkingSpot is a rentable parking listing. Identity is ID.
type ParkingSpot struct {
	ID           string      `json:"id" yaml:"id"`
	Title        string      `json:"title" yaml:"title"`
	Description  string      `json:"description" yaml:"description"`
	PricePerHour float64     `json:"pricePerHour" yaml:"pricePerHour"`
	Location     string      `json:"location" yaml:"location"`
	Coordinates  Coordinates `json:"coordinates" yaml:"coordinates"`
	Image        string      `json:"image" yaml:"image"`
	Rating       float64     `json:"rating" yaml:"rating"`
	Reviews      int         `json:"reviews" yaml:"reviews"`
	Features     []string    `json:"features" yaml:"features"`
	Owner        Owner       `json:"owner" yaml:"owner"`
}

// Validate checks the invariants every catalog source must satisfy.
func (s ParkingSpot) Validate() error {
	switch {
	case strings.TrimSpace(s.ID) == "":
		return errors.New("spot id is required")
	case s.PricePerHour < 0:
		return fmt.Errorf("spot %s: negative pricePerHour %v", s.ID, s.PricePerHour)
	case s.Rating < 0 || s.Rating > 5:
		return fmt.Errorf("spot %s: rating %v out of range [0,5]", s.ID, s.Rating)
	case s.Reviews < 0:
		return fmt.Errorf("spot %s: negative reviews %d", s.ID, s.Reviews)
	}
	return nil
}

// Clone returns a copy that shares no slices with s.
func (s ParkingSpot) Clone() ParkingSpot {
	out := s
	if s.Features != nil {
		out.Features = append([]string(nil), s.Features...)
	}
	return out
}

// GroundingSource is a web citation returned alongside an AI completion.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// InsightResult is the AI market summary for a location query.
type InsightResult struct {
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources"`
}

// Clone returns a copy that shares no slices with r.
func (r InsightResult) Clone() InsightResult {
	out := InsightResult{Text: r.Text, Sources: make([]GroundingSource, len(r.Sources))}
	copy(out.Sources, r.Sources)
	return out
}

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// ViewMode is one of the four mutually exclusive top-level screens.
type ViewMode string

const (
	ViewHome          ViewMode = "HOME"
	ViewSearch        ViewMode = "SEARCH"
	ViewListingDetail ViewMode = "LISTING_DETAIL"
	ViewHost          ViewMode = "HOST"
)

// ParseViewMode accepts the canonical names case-insensitively, plus the
// short path forms used in URLs (home, search, detail, host).
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HOME":
		return ViewHome, nil
	case "SEARCH":
		return ViewSearch, nil
	case "LISTING_DETAIL", "DETAIL":
		return ViewListingDetail, nil
	case "HOST":
		return ViewHost, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}
