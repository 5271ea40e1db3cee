package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fast-trip/model"
	"fast-trip/pkg/tripapi"
	"fast-trip/usecase"
)

type scriptedChat struct {
	replies []*model.ChatResponse
}

func (s *scriptedChat) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	if len(s.replies) == 0 {
		return &model.ChatResponse{FollowUpQuestions: []string{usecase.CollectedSentinel}}, nil
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

type stubFlights struct {
	resp *model.FlightsResponse
	err  error
}

func (s stubFlights) SearchFlights(ctx context.Context, req model.FlightSearchRequest) (*model.FlightsResponse, error) {
	return s.resp, s.err
}

var days = []model.ItineraryDay{
	{Day: 1, Date: "2025-06-22", Activities: []model.Activity{{Time: "10:30", Type: "arrival", Name: "Nashville International Airport"}}},
	{Day: 2, Date: "2025-06-23", Activities: []model.Activity{{Time: "09:00", Type: "museum", Name: "Country Music Hall of Fame"}}},
}

func threeOffers() *model.FlightsResponse {
	dep := time.Date(2025, 6, 22, 8, 0, 0, 0, time.UTC)
	resp := &model.FlightsResponse{}
	for i, p := range []float64{100, 200, 300} {
		resp.Offers = append(resp.Offers, model.FlightOffer{
			ID:            string(rune('A' + i)),
			Airline:       "Delta",
			FlightNumber:  "DL1",
			DepartureTime: model.Timestamp{Time: dep},
			ArrivalTime:   model.Timestamp{Time: dep.Add(2 * time.Hour)},
			Price:         p,
			Currency:      "USD",
		})
	}
	return resp
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// step feeds msg to m and runs the resulting command to completion, the
// way the bubbletea runtime would.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case sentMsg, loadedMsg:
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

func newTestModel(chat usecase.ChatAPI, flights usecase.FlightSearchAPI) Model {
	conv := usecase.NewConversationUsecase(chat, "Where will your trip start?", nil)
	return NewModel(conv, func() *usecase.ItineraryUsecase {
		return usecase.NewItineraryUsecase(flights, model.FlightSearchRequest{}, nil)
	}, days)
}

func TestModel_ChatToItinerary(t *testing.T) {
	chat := &scriptedChat{replies: []*model.ChatResponse{
		{SessionID: "s-1", FollowUpQuestions: []string{"When do you leave?"}},
	}}
	m := newTestModel(chat, stubFlights{resp: threeOffers()})
	t.Cleanup(func() { m.Close() })

	m.input.SetValue("Boston")
	m = step(t, m, key(tea.KeyEnter))
	assert.False(t, m.sending)
	assert.Empty(t, m.input.Value())
	require.Len(t, m.conv.Messages(), 3)
	assert.Contains(t, m.View(), "When do you leave?")

	// blank input sends nothing
	m = step(t, m, key(tea.KeyEnter))
	assert.Len(t, m.conv.Messages(), 3)

	m.input.SetValue("June 22")
	m = step(t, m, key(tea.KeyEnter))
	require.True(t, m.conv.Collected())
	assert.Contains(t, m.View(), "View My Trip Plan")

	m = step(t, m, key(tea.KeyEnter))
	require.Equal(t, modeItinerary, m.mode)
	require.Equal(t, usecase.StateSuccess, m.trip.Snapshot().State)

	out := m.View()
	assert.Contains(t, out, "Flight 3")
	assert.Contains(t, out, "$150.00 USD")
	assert.Contains(t, out, "Nashville International Airport")

	m = step(t, m, key(tea.KeyRight))
	m = step(t, m, key(tea.KeyRight))
	m = step(t, m, key(tea.KeyRight))
	assert.Equal(t, 2, m.trip.Snapshot().Selected)
	assert.Contains(t, m.View(), "$450.00 USD")

	m = step(t, m, key(tea.KeyLeft))
	assert.Equal(t, 1, m.trip.Snapshot().Selected)

	m = step(t, m, key(tea.KeyDown))
	m = step(t, m, key(tea.KeyDown))
	assert.Equal(t, 2, m.day)
	assert.Contains(t, m.View(), "Country Music Hall of Fame")
}

func TestModel_ItineraryError(t *testing.T) {
	m := newTestModel(&scriptedChat{}, stubFlights{err: &tripapi.Error{Status: 500, Message: "error fetching data from API"}})
	t.Cleanup(func() { m.Close() })

	m.input.SetValue("hello")
	m = step(t, m, key(tea.KeyEnter))
	require.True(t, m.conv.Collected())

	m = step(t, m, key(tea.KeyEnter))
	assert.Contains(t, m.View(), "error fetching data from API")
	assert.NotContains(t, m.View(), "Flight 1")

	m = step(t, m, key(tea.KeyEsc))
	assert.Equal(t, modeChat, m.mode)
	assert.Nil(t, m.trip)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(&scriptedChat{}, stubFlights{})
	t.Cleanup(func() { m.Close() })

	_, cmd := m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
