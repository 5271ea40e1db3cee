package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

func (b Budget) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

// FlightSearchRequest is the body of POST flights/search.
type FlightSearchRequest struct {
	Origin                    string `json:"origin" yaml:"origin"`
	Destination               string `json:"destination" yaml:"destination"`
	DepartureDate             string `json:"departure_date" yaml:"departure_date"` // yyyy-mm-dd
	ReturnDate                string `json:"return_date" yaml:"return_date"`
	NumTravelers              int    `json:"num_travelers" yaml:"num_travelers"`
	Budget                    Budget `json:"budget" yaml:"budget"`
	AccessibilityRequirements bool   `json:"accessibility_requirements" yaml:"accessibility_requirements"`
}

type FlightOffer struct {
	ID                    string    `json:"flight_id"`
	Airline               string    `json:"airline"`
	FlightNumber          string    `json:"flight_number"`
	Origin                string    `json:"origin"`
	Destination           string    `json:"destination"`
	DepartureTime         Timestamp `json:"departure_time"`
	ArrivalTime           Timestamp `json:"arrival_time"`
	DurationMinutes       int       `json:"duration_minutes"`
	Price                 float64   `json:"price"`
	Currency              string    `json:"currency"`
	AccessibilityScore    float64   `json:"accessibility_score"` // 0-10
	AccessibilityFeatures []string  `json:"accessibility_features"`
	IsDirect              bool      `json:"is_direct"`
	Stops                 int       `json:"stops"`
	AircraftType          string    `json:"aircraft_type,omitempty"`
}

// SearchSummary echoes the parameters the search ran with.
type SearchSummary struct {
	Origin                    string `json:"origin"`
	Destination               string `json:"destination"`
	DepartureDate             string `json:"departure_date"`
	ReturnDate                string `json:"return_date,omitempty"`
	NumTravelers              int    `json:"num_travelers"`
	Budget                    Budget `json:"budget"`
	AccessibilityRequirements bool   `json:"accessibility_requirements"`
}

type FlightsResponse struct {
	SearchID      string        `json:"search_id"`
	Offers        []FlightOffer `json:"offers"`
	TotalResults  int           `json:"total_results"`
	SearchSummary SearchSummary `json:"search_summary"`
}

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Timestamp accepts both RFC 3339 and the zone-less ISO form the flight
// service emits ("2025-06-22T08:00:00").
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}
