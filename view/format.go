package view

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"fast-trip/model"
)

// FlexibleSurcharge is the multiplier of the refundable fare over the base price.
const FlexibleSurcharge = 1.5

// TicketTier is one purchasable fare for an offer.
type TicketTier struct {
	Name        string
	Price       string
	Description string
	Flexible    bool
}

// TicketTiers returns the standard and flexible fares shown on a flight card.
func TicketTiers(offer model.FlightOffer) []TicketTier {
	return []TicketTier{
		{
			Name:        "Standard Ticket",
			Price:       FormatPrice(offer.Price, offer.Currency),
			Description: "Non-refundable",
		},
		{
			Name:        "Flexible Ticket",
			Price:       FormatPrice(offer.Price*FlexibleSurcharge, offer.Currency),
			Description: "Refundable",
			Flexible:    true,
		},
	}
}

// FormatPrice renders amounts as "$150.00 USD".
func FormatPrice(amount float64, currency string) string {
	return strings.TrimSpace(fmt.Sprintf("$%.2f %s", amount, currency))
}

// FormatDuration turns minutes into "2h 30m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatStops describes a routing: "Direct", "1 stop", "2 stops".
func FormatStops(offer model.FlightOffer) string {
	if offer.IsDirect || offer.Stops == 0 {
		return "Direct"
	}
	if offer.Stops == 1 {
		return "1 stop"
	}
	return fmt.Sprintf("%d stops", offer.Stops)
}

// DepartureDay renders "Sunday, 22 Jun".
func DepartureDay(t model.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Monday, 2 Jan")
}

func ClockTime(t model.Timestamp) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}

// TimelineDate renders an itinerary date as "Sunday, June 22". Unparseable
// dates are shown as given.
func TimelineDate(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2")
}

// Capitalize upper-cases the first letter of an activity type.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Humanize turns an identifier such as "wheelchair_assistance" into
// "Wheelchair assistance".
func Humanize(s string) string {
	return Capitalize(strings.ReplaceAll(s, "_", " "))
}
