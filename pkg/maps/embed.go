// Package maps builds Google Maps Embed API URLs for the itinerary map:
// a centred view, a single marker, or a driving route across a day.
package maps

import (
	"fmt"
	"net/url"
	"strings"

	"fast-trip/model"
)

const embedBase = "https://www.google.com/maps/embed/v1/"

type LatLng struct {
	Lat float64
	Lng float64
}

// Route is a driving route through a day's activities in planned order.
type Route struct {
	Origin      string
	Destination string
	Waypoints   []string
}

// Embed renders map URLs with one API key. The zero key disables maps.
type Embed struct {
	apiKey string
	center LatLng
	zoom   int
}

func New(apiKey string, center LatLng, zoom int) *Embed {
	if zoom <= 0 {
		zoom = 13
	}
	return &Embed{apiKey: apiKey, center: center, zoom: zoom}
}

func (e *Embed) Enabled() bool {
	return e != nil && e.apiKey != ""
}

// RouteForDay builds the route for a day. ok is false when the day has fewer
// than two stops and there is nothing to route.
func RouteForDay(day model.ItineraryDay) (Route, bool) {
	var stops []string
	for _, a := range day.Activities {
		if addr := strings.TrimSpace(a.Address); addr != "" {
			stops = append(stops, addr)
		}
	}
	if len(stops) < 2 {
		return Route{}, false
	}
	return Route{
		Origin:      stops[0],
		Destination: stops[len(stops)-1],
		Waypoints:   stops[1 : len(stops)-1],
	}, true
}

// DirectionsURL renders a driving route.
func (e *Embed) DirectionsURL(r Route) string {
	q := url.Values{}
	q.Set("key", e.apiKey)
	q.Set("origin", r.Origin)
	q.Set("destination", r.Destination)
	if len(r.Waypoints) > 0 {
		q.Set("waypoints", strings.Join(r.Waypoints, "|"))
	}
	q.Set("mode", "driving")
	return embedBase + "directions?" + q.Encode()
}

// ViewURL renders the map around the configured center.
func (e *Embed) ViewURL() string {
	q := url.Values{}
	q.Set("key", e.apiKey)
	q.Set("center", fmt.Sprintf("%.4f,%.4f", e.center.Lat, e.center.Lng))
	q.Set("zoom", fmt.Sprint(e.zoom))
	return embedBase + "view?" + q.Encode()
}

// PlaceURL renders a single marker at a place or address.
func (e *Embed) PlaceURL(place string) string {
	q := url.Values{}
	q.Set("key", e.apiKey)
	q.Set("q", place)
	q.Set("zoom", fmt.Sprint(e.zoom))
	return embedBase + "place?" + q.Encode()
}

// DayURL picks the best map for a day: the driving route when there is one,
// a marker for a single stop, otherwise the centred view.
func (e *Embed) DayURL(day *model.ItineraryDay) string {
	if day == nil {
		return e.ViewURL()
	}
	if r, ok := RouteForDay(*day); ok {
		return e.DirectionsURL(r)
	}
	for _, a := range day.Activities {
		if strings.TrimSpace(a.Address) != "" {
			return e.PlaceURL(a.Address)
		}
	}
	return e.ViewURL()
}
