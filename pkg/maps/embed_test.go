package maps

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fast-trip/model"
)

func day(addresses ...string) model.ItineraryDay {
	d := model.ItineraryDay{Day: 1}
	for _, a := range addresses {
		d.Activities = append(d.Activities, model.Activity{Name: a, Address: a})
	}
	return d
}

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

func TestRouteForDay(t *testing.T) {
	r, ok := RouteForDay(day("Airport", "Hotel", "Museum", "Dinner"))
	require.True(t, ok)
	assert.Equal(t, "Airport", r.Origin)
	assert.Equal(t, "Dinner", r.Destination)
	assert.Equal(t, []string{"Hotel", "Museum"}, r.Waypoints)

	r, ok = RouteForDay(day("Airport", "Hotel"))
	require.True(t, ok)
	assert.Empty(t, r.Waypoints)

	_, ok = RouteForDay(day("Airport"))
	assert.False(t, ok)

	_, ok = RouteForDay(day("Airport", "  "))
	assert.False(t, ok, "blank addresses are not stops")
}

func TestEmbed_DirectionsURL(t *testing.T) {
	e := New("k3y", LatLng{Lat: 36.1627, Lng: -86.7816}, 13)
	raw := e.DirectionsURL(Route{Origin: "A St", Destination: "D St", Waypoints: []string{"B St", "C St"}})

	assert.True(t, strings.HasPrefix(raw, "https://www.google.com/maps/embed/v1/directions?"))
	q := query(t, raw)
	assert.Equal(t, "k3y", q.Get("key"))
	assert.Equal(t, "A St", q.Get("origin"))
	assert.Equal(t, "D St", q.Get("destination"))
	assert.Equal(t, "B St|C St", q.Get("waypoints"))
	assert.Equal(t, "driving", q.Get("mode"))
}

func TestEmbed_DayURL(t *testing.T) {
	e := New("k3y", LatLng{Lat: 36.1627, Lng: -86.7816}, 0)

	assert.Contains(t, e.DayURL(nil), "/view?")

	one := day("Only Stop")
	raw := e.DayURL(&one)
	assert.Contains(t, raw, "/place?")
	assert.Equal(t, "Only Stop", query(t, raw).Get("q"))

	empty := model.ItineraryDay{Day: 2}
	raw = e.DayURL(&empty)
	assert.Contains(t, raw, "/view?")
	assert.Equal(t, "36.1627,-86.7816", query(t, raw).Get("center"))
	assert.Equal(t, "13", query(t, raw).Get("zoom"))

	many := day("A", "B", "C")
	assert.Contains(t, e.DayURL(&many), "/directions?")
}

func TestEmbed_Enabled(t *testing.T) {
	var nilEmbed *Embed
	assert.False(t, nilEmbed.Enabled())
	assert.False(t, New("", LatLng{}, 13).Enabled())
	assert.True(t, New("key", LatLng{}, 13).Enabled())
}
