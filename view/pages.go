package view

import (
	"fmt"
	"net/url"

	"fast-trip/model"
	"fast-trip/pkg/maps"
)

type FAQEntry struct {
	Question string
	Answer   string
}

// DefaultFAQ is shown under the chat on the landing page.
var DefaultFAQ = []FAQEntry{
	{
		Question: "Who is fast-trip for?",
		Answer:   "Travelers with disabilities, older travelers and anyone who needs a trip planned around accessibility.",
	},
	{
		Question: "What does the assistant ask me?",
		Answer:   "Where and when you travel, who is coming, your budget, and the accessibility, dietary and pace needs the plan has to respect.",
	},
	{
		Question: "How are flights chosen?",
		Answer:   "Offers are ranked with an accessibility score based on direct routing, aircraft and the assistance services each airline provides.",
	},
	{
		Question: "Can I save my itinerary?",
		Answer:   "Use the Download button on the itinerary page to keep a copy of your flights and timeline for the trip.",
	},
}

type ChatPage struct {
	Messages  []model.Message
	Collected bool
	Failure   string
	FAQ       []FAQEntry
}

type FlightOption struct {
	Index  int
	Label  string
	Href   string
	Active bool
}

type DayTab struct {
	Day    int
	Href   string
	Active bool
}

type MapPanel struct {
	Enabled bool
	URL     string
	Days    []DayTab
}

// ItineraryInput is everything the itinerary page is rendered from.
type ItineraryInput struct {
	ViewID      string
	Destination string
	State       string // loading, error, success
	Error       string
	Flights     *model.FlightsResponse
	Selected    int
	Days        []model.ItineraryDay
	SelectedDay int
	Maps        *maps.Embed
}

type ItineraryPage struct {
	ViewID      string
	Destination string
	State       string
	Error       string
	Summary     *model.SearchSummary
	Options     []FlightOption
	Offer       *model.FlightOffer
	Tickets     []TicketTier
	Days        []model.ItineraryDay
	Map         MapPanel
}

// NewItineraryPage lays out the itinerary page. Flight content is only
// present in the success state.
func NewItineraryPage(in ItineraryInput) ItineraryPage {
	page := ItineraryPage{
		ViewID: in.ViewID,
		State:  in.State,
		Error:  in.Error,
	}
	if in.State != "success" || in.Flights == nil {
		return page
	}

	page.Destination = in.Destination
	page.Summary = &in.Flights.SearchSummary
	for i := range in.Flights.Offers {
		page.Options = append(page.Options, FlightOption{
			Index:  i,
			Label:  fmt.Sprintf("Flight %d", i+1),
			Href:   itineraryHref(in.ViewID, i, in.SelectedDay),
			Active: i == in.Selected,
		})
	}
	if in.Selected >= 0 && in.Selected < len(in.Flights.Offers) {
		offer := in.Flights.Offers[in.Selected]
		page.Offer = &offer
		page.Tickets = TicketTiers(offer)
	}

	page.Days = in.Days
	page.Map = newMapPanel(in)
	return page
}

func newMapPanel(in ItineraryInput) MapPanel {
	panel := MapPanel{Enabled: in.Maps.Enabled()}
	var selected *model.ItineraryDay
	for i := range in.Days {
		d := in.Days[i]
		active := d.Day == in.SelectedDay
		if active {
			selected = &in.Days[i]
		}
		panel.Days = append(panel.Days, DayTab{
			Day:    d.Day,
			Href:   itineraryHref(in.ViewID, in.Selected, d.Day),
			Active: active,
		})
	}
	if panel.Enabled {
		panel.URL = in.Maps.DayURL(selected)
	}
	return panel
}

func itineraryHref(viewID string, flight, day int) string {
	q := url.Values{}
	q.Set("view", viewID)
	q.Set("flight", fmt.Sprint(flight))
	q.Set("day", fmt.Sprint(day))
	return "/itinerary?" + q.Encode()
}

// AirportsPage lists the airports matching the header search.
type AirportsPage struct {
	Query    string
	Airports []model.Airport
	Error    string
}

type ErrorPage struct {
	Status  int
	Message string
}
