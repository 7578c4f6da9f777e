package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/parkshare/parkshare-web/services/web/models"
)

// Store is the immutable, ordered set of parking spots for the process.
type Store struct {
	spots    []models.ParkingSpot
	byID     map[string]int
	snapshot string
}

// New validates spots and builds a Store. Order is preserved.
func New(spots []models.ParkingSpot) (*Store, error) {
	s := &Store{
		spots: make([]models.ParkingSpot, 0, len(spots)),
		byID:  make(map[string]int, len(spots)),
	}
	for _, spot := range spots {
		if err := spot.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byID[spot.ID]; dup {
			return nil, fmt.Errorf("duplicate spot id %q", spot.ID)
		}
		s.byID[spot.ID] = len(s.spots)
		s.spots = append(s.spots, spot.Clone())
	}

	raw, err := json.Marshal(s.spots)
	if err != nil {
		return nil, fmt.Errorf("encode catalog snapshot: %w", err)
	}
	s.snapshot = string(raw)
	return s, nil
}

// List returns every spot in catalog order.
func (s *Store) List() []models.ParkingSpot {
	out := make([]models.ParkingSpot, len(s.spots))
	for i, spot := range s.spots {
		out[i] = spot.Clone()
	}
	return out
}

// Get looks a spot up by id.
func (s *Store) Get(id string) (models.ParkingSpot, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return models.ParkingSpot{}, false
	}
	return s.spots[idx].Clone(), true
}

func (s *Store) Len() int {
	return len(s.spots)
}

// Snapshot is the JSON serialization of the catalog handed to the chat
// assistant as grounding context.
func (s *Store) Snapshot() string {
	return s.snapshot
}

type fileCatalog struct {
	Spots []models.ParkingSpot `yaml:"spots"`
}

// LoadFile reads a YAML catalog of the form `spots: [...]`.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(fc.Spots) == 0 {
		return nil, fmt.Errorf("catalog %s has no spots", path)
	}
	return New(fc.Spots)
}

// Source is a backing store that can list catalog rows, such as db.Store.
type Source interface {
	ListSpots(ctx context.Context) ([]models.ParkingSpot, error)
}

// LoadSource reads the catalog once from src.
func LoadSource(ctx context.Context, src Source) (*Store, error) {
	spots, err := src.ListSpots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spots: %w", err)
	}
	if len(spots) == 0 {
		return nil, errors.New("catalog source has no spots")
	}
	return New(spots)
}

// Default returns the built-in sample catalog.
func Default() *Store {
	s, err := New(defaultSpots())
	if err != nil {
		panic(err)
	}
	return s
}

func defaultSpots() []models.ParkingSpot {
	return []models.ParkingSpot{
		{
			ID:           "1",
			Title:        "Secure Underground Spot near City Hall",
			Description:  "A dedicated underground parking space with 24/7 security cameras and gate access. Perfect for commuters.",
			PricePerHour: 4.5,
			Location:     "Downtown, Los Angeles",
			Coordinates:  models.Coordinates{Lat: 34.0522, Lng: -118.2437},
			Image:        "https://picsum.photos/seed/park1/800/600",
			Rating:       4.9,
			Reviews:      124,
			Features:     []string{"CCTV", "Underground", "EV Charging"},
			Owner:        models.Owner{Name: "Sarah J.", Avatar: "https://picsum.photos/seed/user1/100/100"},
		},
		{
			ID:           "2",
			Title:        "Private Driveway - 5 min to Stadium",
			Description:  "Park your car in our wide, safe driveway. Just a short walk to the main entrance of the stadium.",
			PricePerHour: 15.0,
			Location:     "Inglewood, CA",
			Coordinates:  models.Coordinates{Lat: 33.9617, Lng: -118.3531},
			Image:        "https://picsum.photos/seed/park2/800/600",
			Rating:       4.7,
			Reviews:      89,
			Features:     []string{"Easy Access", "Well Lit", "Gated"},
			Owner:        models.Owner{Name: "Mike T.", Avatar: "https://picsum.photos/seed/user2/100/100"},
		},
		{
			ID:           "3",
			Title:        "Corner Parking Space in Arts District",
			Description:  "Oversized spot suitable for SUVs or large vans. Vibrant neighborhood with lots of cafes nearby.",
			PricePerHour: 3.0,
			Location:     "Arts District, LA",
			Coordinates:  models.Coordinates{Lat: 34.045, Lng: -118.232},
			Image:        "https://picsum.photos/seed/park3/800/600",
			Rating:       4.8,
			Reviews:      45,
			Features:     []string{"Large Vehicle", "24/7 Access"},
			Owner:        models.Owner{Name: "Elena R.", Avatar: "https://picsum.photos/seed/user3/100/100"},
		},
	}
}
