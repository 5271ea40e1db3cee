package mockapi

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fast-trip/model"
)

// TopOffers is how many offers a search returns after ranking.
const TopOffers = 3

var (
	airlines      = []string{"American Airlines", "Delta", "United", "Southwest", "JetBlue", "Alaska Airlines"}
	aircraftTypes = []string{"B737", "A320", "B787", "A350", "B777"}

	baseFeatures = []string{
		"Wheelchair assistance available",
		"Special seating options",
		"Medical equipment support",
		"Service animal friendly",
		"Priority boarding",
	}
	extraFeatures = []string{
		"Accessible boarding ramp",
		"Assistance with carry-on luggage",
		"Accessible lavatory",
		"Oxygen support available",
		"Visual assistance available",
		"Hearing assistance available",
	}
)

var Airports = []model.Airport{
	{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York"},
	{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles"},
	{Code: "ORD", Name: "O'Hare International Airport", City: "Chicago"},
	{Code: "ATL", Name: "Hartsfield-Jackson Atlanta International Airport", City: "Atlanta"},
	{Code: "DFW", Name: "Dallas/Fort Worth International Airport", City: "Dallas"},
	{Code: "DEN", Name: "Denver International Airport", City: "Denver"},
	{Code: "SFO", Name: "San Francisco International Airport", City: "San Francisco"},
	{Code: "LAS", Name: "McCarran International Airport", City: "Las Vegas"},
	{Code: "MCO", Name: "Orlando International Airport", City: "Orlando"},
	{Code: "CLT", Name: "Charlotte Douglas International Airport", City: "Charlotte"},
	{Code: "BOS", Name: "Logan International Airport", City: "Boston"},
	{Code: "BNA", Name: "Nashville International Airport", City: "Nashville"},
}

// FlightGenerator produces random but plausible offers for a search.
type FlightGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFlightGenerator seeds the generator; equal seeds give equal offers.
func NewFlightGenerator(seed uint64) *FlightGenerator {
	return &FlightGenerator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Search validates req and returns the best offers ranked by accessibility
// score, then price.
func (g *FlightGenerator) Search(req model.FlightSearchRequest) (*model.FlightsResponse, error) {
	departure, err := time.Parse(time.DateOnly, req.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("departure_date: %w", err)
	}
	if req.Origin == "" || req.Destination == "" {
		return nil, fmt.Errorf("origin and destination are required")
	}
	budget := req.Budget
	if budget == "" {
		budget = model.BudgetMedium
	}
	if !budget.Valid() {
		return nil, fmt.Errorf("unknown budget %q", req.Budget)
	}
	travelers := req.NumTravelers
	if travelers == 0 {
		travelers = 1
	}

	offers := g.offers(req, budget, departure.Add(8*time.Hour))
	slices.SortStableFunc(offers, func(a, b model.FlightOffer) int {
		if a.AccessibilityScore != b.AccessibilityScore {
			if a.AccessibilityScore > b.AccessibilityScore {
				return -1
			}
			return 1
		}
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	})

	total := len(offers)
	if len(offers) > TopOffers {
		offers = offers[:TopOffers]
	}
	return &model.FlightsResponse{
		SearchID:     uuid.New().String(),
		Offers:       offers,
		TotalResults: total,
		SearchSummary: model.SearchSummary{
			Origin:                    req.Origin,
			Destination:               req.Destination,
			DepartureDate:             req.DepartureDate,
			ReturnDate:                req.ReturnDate,
			NumTravelers:              travelers,
			Budget:                    budget,
			AccessibilityRequirements: req.AccessibilityRequirements,
		},
	}, nil
}

func (g *FlightGenerator) offers(req model.FlightSearchRequest, budget model.Budget, base time.Time) []model.FlightOffer {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 5 + g.rnd.IntN(8) // 5-12
	offers := make([]model.FlightOffer, 0, n)
	for i := range n {
		departure := base.Add(time.Duration(g.rnd.IntN(15)) * time.Hour)
		hours := 1 + g.rnd.IntN(8)
		score, features := g.accessibility(req.AccessibilityRequirements)
		direct := g.rnd.Float64() < 0.3
		stops := 0
		if !direct {
			stops = 1 + g.rnd.IntN(2)
		}

		offers = append(offers, model.FlightOffer{
			ID:                    fmt.Sprintf("TEST_FLIGHT_%d", i+1),
			Airline:               airlines[g.rnd.IntN(len(airlines))],
			FlightNumber:          fmt.Sprint(100 + g.rnd.IntN(9900)),
			Origin:                req.Origin,
			Destination:           req.Destination,
			DepartureTime:         model.Timestamp{Time: departure},
			ArrivalTime:           model.Timestamp{Time: departure.Add(time.Duration(hours) * time.Hour)},
			DurationMinutes:       hours * 60,
			Price:                 g.price(budget),
			Currency:              "USD",
			AccessibilityScore:    score,
			AccessibilityFeatures: features,
			IsDirect:              direct,
			Stops:                 stops,
			AircraftType:          aircraftTypes[g.rnd.IntN(len(aircraftTypes))],
		})
	}
	return offers
}

// price draws a whole-dollar fare from the budget's range.
func (g *FlightGenerator) price(b model.Budget) float64 {
	switch b {
	case model.BudgetLow:
		return float64(150 + g.rnd.IntN(201))
	case model.BudgetMedium:
		return float64(300 + g.rnd.IntN(301))
	}
	return float64(500 + g.rnd.IntN(701))
}

func (g *FlightGenerator) accessibility(required bool) (float64, []string) {
	score := 5.0
	if !required {
		return score, []string{}
	}
	score += 2
	features := slices.Clone(baseFeatures)

	extra := 2 + g.rnd.IntN(2)
	for _, i := range g.rnd.Perm(len(extraFeatures))[:extra] {
		features = append(features, extraFeatures[i])
	}
	score += float64(extra) * 0.5
	return min(10, score), features
}

// SearchAirports matches query against airport codes (case-insensitive)
// and names.
func SearchAirports(query string) []model.Airport {
	out := []model.Airport{}
	for _, a := range Airports {
		if strings.Contains(a.Code, strings.ToUpper(query)) ||
			strings.Contains(strings.ToLower(a.Name), strings.ToLower(query)) {
			out = append(out, a)
		}
	}
	return out
}
