package controller

import (
	"log/slog"
	"net/http"

	"fast-trip/view"
)

// Routes lists the handlers of the front-end.
type Routes struct {
	Chat      *ChatController
	Itinerary *ItineraryController
	Airports  *AirportController
	Metrics   http.Handler // nil disables /metrics
}

// Handler builds the front-end mux wrapped in logging and CORS.
func (rt Routes) Handler(logger *slog.Logger, m *HTTPMetrics) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", rt.Chat.Index)
	mux.HandleFunc("POST /chat", rt.Chat.Send)
	mux.HandleFunc("POST /chat/reset", rt.Chat.Reset)

	mux.HandleFunc("GET /itinerary", rt.Itinerary.Show)
	mux.HandleFunc("GET /itinerary/download", rt.Itinerary.Download)
	mux.HandleFunc("GET /airports", rt.Airports.Search)

	mux.Handle("GET /static/", http.StripPrefix("/static/", view.Static()))
	mux.HandleFunc("GET /healthz", Healthz)
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics)
	}

	return WithLogging(logger, m, WithCORS(mux))
}
