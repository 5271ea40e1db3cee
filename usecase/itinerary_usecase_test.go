package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fast-trip/model"
	"fast-trip/pkg/tripapi"
)

type fakeFlightAPI struct {
	calls   atomic.Int32
	got     model.FlightSearchRequest
	resp    *model.FlightsResponse
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeFlightAPI) SearchFlights(ctx context.Context, req model.FlightSearchRequest) (*model.FlightsResponse, error) {
	f.calls.Add(1)
	f.got = req
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.resp, f.err
}

var searchRequest = model.FlightSearchRequest{
	Origin:                    "Boston",
	Destination:               "Nashville",
	DepartureDate:             "2025-06-22",
	ReturnDate:                "2025-06-22",
	NumTravelers:              4,
	Budget:                    model.BudgetMedium,
	AccessibilityRequirements: true,
}

func offers(prices ...float64) *model.FlightsResponse {
	resp := &model.FlightsResponse{SearchID: "search-1", TotalResults: len(prices)}
	for i, p := range prices {
		resp.Offers = append(resp.Offers, model.FlightOffer{
			ID:           string(rune('A' + i)),
			Airline:      "Delta",
			FlightNumber: "DL" + string(rune('0'+i)),
			Price:        p,
			Currency:     "USD",
		})
	}
	return resp
}

func TestItinerary_StartsLoading(t *testing.T) {
	u := NewItineraryUsecase(&fakeFlightAPI{}, searchRequest, nil)
	snap := u.Snapshot()
	assert.Equal(t, StateLoading, snap.State)
	assert.Nil(t, snap.Flights)
	assert.Nil(t, snap.SelectedOffer())
}

func TestItinerary_LoadSuccess(t *testing.T) {
	api := &fakeFlightAPI{resp: offers(100, 200, 300)}
	u := NewItineraryUsecase(api, searchRequest, nil)

	require.NoError(t, u.Load(context.Background()))

	assert.Equal(t, searchRequest, api.got)
	snap := u.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Empty(t, snap.Error)
	require.Len(t, snap.Flights.Offers, 3)
	assert.Equal(t, 0, snap.Selected)
	assert.Equal(t, api.resp.Offers[0], *snap.SelectedOffer())
}

func TestItinerary_SelectRendersOfferUnmodified(t *testing.T) {
	api := &fakeFlightAPI{resp: offers(100, 200, 300)}
	u := NewItineraryUsecase(api, searchRequest, nil)
	require.NoError(t, u.Load(context.Background()))

	for k := range api.resp.Offers {
		assert.Equal(t, k, u.Select(k))
		assert.Equal(t, api.resp.Offers[k], *u.Snapshot().SelectedOffer())
	}
}

func TestItinerary_SelectClamps(t *testing.T) {
	u := NewItineraryUsecase(&fakeFlightAPI{resp: offers(100, 200)}, searchRequest, nil)

	// before any offers arrive
	assert.Equal(t, 0, u.Select(5))

	require.NoError(t, u.Load(context.Background()))
	assert.Equal(t, 1, u.Select(7))
	assert.Equal(t, 0, u.Select(-3))
	assert.Equal(t, 1, u.Select(1))
}

func TestItinerary_EmptyOffers(t *testing.T) {
	u := NewItineraryUsecase(&fakeFlightAPI{resp: offers()}, searchRequest, nil)
	require.NoError(t, u.Load(context.Background()))

	snap := u.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Nil(t, snap.SelectedOffer())
	assert.Equal(t, 0, u.Select(2))
}

func TestItinerary_LoadFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "api error",
			err:  &tripapi.Error{Method: "POST", Endpoint: "flights/search", Status: 502, Message: "error sending data to API"},
			want: "error sending data to API",
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: "connection reset",
		},
		{
			name: "error without message",
			err:  errors.New(""),
			want: msgUnexpectedError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewItineraryUsecase(&fakeFlightAPI{err: tt.err}, searchRequest, nil)

			require.Error(t, u.Load(context.Background()))

			snap := u.Snapshot()
			assert.Equal(t, StateError, snap.State)
			assert.Equal(t, tt.want, snap.Error)
			assert.Nil(t, snap.Flights)
			assert.Nil(t, snap.SelectedOffer())
		})
	}
}

func TestItinerary_NilResponseIsAnError(t *testing.T) {
	u := NewItineraryUsecase(&fakeFlightAPI{}, searchRequest, nil)

	var err error
	require.NotPanics(t, func() { err = u.Load(context.Background()) })
	require.Error(t, err)

	snap := u.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, msgUnexpectedError, snap.Error)
	assert.Nil(t, snap.Flights)
	assert.Nil(t, snap.SelectedOffer())
	assert.Equal(t, 0, u.Select(1))
}

func TestItinerary_LoadRunsOnce(t *testing.T) {
	api := &fakeFlightAPI{err: errors.New("down")}
	u := NewItineraryUsecase(api, searchRequest, nil)

	require.Error(t, u.Load(context.Background()))
	require.NoError(t, u.Load(context.Background()))

	assert.Equal(t, int32(1), api.calls.Load())
	assert.Equal(t, StateError, u.Snapshot().State)
}

func TestItinerary_CloseDiscardsLateResult(t *testing.T) {
	api := &fakeFlightAPI{
		resp:    offers(100),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	u := NewItineraryUsecase(api, searchRequest, nil)

	done := make(chan error, 1)
	go func() { done <- u.Load(context.Background()) }()

	<-api.started
	u.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrViewClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("load did not return after Close")
	}
	assert.Equal(t, StateLoading, u.Snapshot().State)
	assert.Nil(t, u.Snapshot().Flights)
}

func TestItineraryState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "unknown", ItineraryState(9).String())
}
