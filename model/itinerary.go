package model

type Activity struct {
	Time     string `json:"time"`
	Type     string `json:"type"` // e.g. "breakfast", "museum", "hotel"
	Name     string `json:"name"`
	Address  string `json:"address"`
	Duration string `json:"duration"`
}

// ItineraryDay is one calendar day of planned activities, kept in the order
// they were planned.
type ItineraryDay struct {
	Day        int        `json:"day"` // 1-based
	Date       string     `json:"date,omitempty"`
	Activities []Activity `json:"activities"`
}
