package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fast-trip/model"
	"fast-trip/pkg/tripapi"
)

const msgUnexpectedError = "unexpected error"

var errNoResponse = errors.New("flight search returned no response")

type FlightSearchAPI interface {
	SearchFlights(ctx context.Context, req model.FlightSearchRequest) (*model.FlightsResponse, error)
}

type ItineraryState int

const (
	StateLoading ItineraryState = iota
	StateError
	StateSuccess
)

func (s ItineraryState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateSuccess:
		return "success"
	}
	return "unknown"
}

// ItinerarySnapshot is a consistent read of an itinerary view.
type ItinerarySnapshot struct {
	State    ItineraryState
	Flights  *model.FlightsResponse
	Error    string
	Selected int
}

// SelectedOffer returns the offer at Selected, or nil when there is none.
func (s ItinerarySnapshot) SelectedOffer() *model.FlightOffer {
	if s.Flights == nil || s.Selected < 0 || s.Selected >= len(s.Flights.Offers) {
		return nil
	}
	return &s.Flights.Offers[s.Selected]
}

// ItineraryUsecase searches flights once per page view and keeps the
// visitor's offer selection.
type ItineraryUsecase struct {
	api     FlightSearchAPI
	request model.FlightSearchRequest
	logger  *slog.Logger

	lifetime context.Context
	cancel   context.CancelFunc
	loadOnce sync.Once

	mu       sync.RWMutex
	state    ItineraryState
	flights  *model.FlightsResponse
	errMsg   string
	selected int
}

func NewItineraryUsecase(api FlightSearchAPI, request model.FlightSearchRequest, logger *slog.Logger) *ItineraryUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	lifetime, cancel := context.WithCancel(context.Background())
	return &ItineraryUsecase{
		api:      api,
		request:  request,
		logger:   logger,
		lifetime: lifetime,
		cancel:   cancel,
		state:    StateLoading,
	}
}

// Load runs the flight search. Only the first call does any work; a failed
// search is not retried on this view.
func (u *ItineraryUsecase) Load(ctx context.Context) error {
	var err error
	u.loadOnce.Do(func() {
		err = u.load(ctx)
	})
	return err
}

func (u *ItineraryUsecase) load(ctx context.Context) error {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(u.lifetime, cancel)
	defer stop()

	resp, err := u.api.SearchFlights(callCtx, u.request)

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.lifetime.Err() != nil {
		u.logger.Debug("Discarding flight search result for closed view")
		return ErrViewClosed
	}
	if err != nil {
		u.state = StateError
		u.errMsg = errorMessage(err)
		u.logger.Warn("Flight search failed",
			"origin", u.request.Origin,
			"destination", u.request.Destination,
			"error", err)
		return err
	}
	if resp == nil {
		u.state = StateError
		u.errMsg = msgUnexpectedError
		u.logger.Warn("Flight search returned no response")
		return errNoResponse
	}

	u.state = StateSuccess
	u.flights = resp
	u.selected = clamp(u.selected, len(resp.Offers))
	u.logger.Info("Flight search finished",
		"search_id", resp.SearchID,
		"offers", len(resp.Offers))
	return nil
}

// Select chooses an offer and returns the index actually selected, clamped
// to the offers on hand.
func (u *ItineraryUsecase) Select(index int) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	if u.flights != nil {
		n = len(u.flights.Offers)
	}
	u.selected = clamp(index, n)
	return u.selected
}

func (u *ItineraryUsecase) Snapshot() ItinerarySnapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return ItinerarySnapshot{
		State:    u.state,
		Flights:  u.flights,
		Error:    u.errMsg,
		Selected: u.selected,
	}
}

func (u *ItineraryUsecase) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cancel()
}

func clamp(index, n int) int {
	if n <= 0 || index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}

func errorMessage(err error) string {
	if msg := tripapi.UserMessage(err, ""); msg != "" {
		return msg
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgUnexpectedError
}
