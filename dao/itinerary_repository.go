package dao

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"fast-trip/model"
)

//go:embed mocks/trip_itinerary.json
var defaultItinerary []byte

type itineraryFile struct {
	Destination string               `json:"destination"`
	Itinerary   []model.ItineraryDay `json:"itinerary"`
}

// ItineraryRepository serves the planned days of the trip. The planner
// service does not exist yet, so days come from a static document.
type ItineraryRepository struct {
	mu          sync.RWMutex
	destination string
	days        []model.ItineraryDay
}

// NewItineraryRepository loads the bundled mock itinerary.
func NewItineraryRepository() (*ItineraryRepository, error) {
	return parseItinerary(defaultItinerary)
}

// LoadItineraryRepository reads an itinerary document from path.
func LoadItineraryRepository(path string) (*ItineraryRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read itinerary: %w", err)
	}
	return parseItinerary(data)
}

// Reload replaces the days with the document at path. On error the current
// days are kept.
func (r *ItineraryRepository) Reload(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read itinerary: %w", err)
	}
	file, err := decodeItinerary(data)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.destination, r.days = file.Destination, file.Itinerary
	r.mu.Unlock()
	return nil
}

func parseItinerary(data []byte) (*ItineraryRepository, error) {
	file, err := decodeItinerary(data)
	if err != nil {
		return nil, err
	}
	return &ItineraryRepository{destination: file.Destination, days: file.Itinerary}, nil
}

func decodeItinerary(data []byte) (*itineraryFile, error) {
	var file itineraryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse itinerary: %w", err)
	}
	for i, day := range file.Itinerary {
		if day.Day < 1 {
			return nil, fmt.Errorf("itinerary entry %d: day must be >= 1, got %d", i, day.Day)
		}
	}
	return &file, nil
}

// GetAll returns every day in planned order.
func (r *ItineraryRepository) GetAll() []model.ItineraryDay {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.ItineraryDay, len(r.days))
	for i, d := range r.days {
		d.Activities = slices.Clone(d.Activities)
		out[i] = d
	}
	return out
}

// GetByDay returns the day numbered day, or nil.
func (r *ItineraryRepository) GetByDay(day int) *model.ItineraryDay {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.days {
		if d.Day == day {
			d.Activities = slices.Clone(d.Activities)
			return &d
		}
	}
	return nil
}

func (r *ItineraryRepository) Destination() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.destination
}
