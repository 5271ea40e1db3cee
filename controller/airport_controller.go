package controller

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"fast-trip/model"
	"fast-trip/pkg/tripapi"
	"fast-trip/view"
)

const msgAirportsFailed = "We couldn't search airports right now. Please try again."

// maxAirportQuery bounds the text forwarded to the flight service.
const maxAirportQuery = 64

type AirportSearchAPI interface {
	SearchAirports(ctx context.Context, query string) ([]model.Airport, error)
}

// AirportController backs the airport search box in the page header.
type AirportController struct {
	api    AirportSearchAPI
	pages  pageWriter
	logger *slog.Logger
}

func NewAirportController(api AirportSearchAPI, renderer *view.Renderer, logger *slog.Logger) *AirportController {
	if logger == nil {
		logger = slog.Default()
	}
	return &AirportController{
		api:    api,
		pages:  pageWriter{renderer: renderer, logger: logger},
		logger: logger,
	}
}

// Search serves GET /airports?q=. An empty query renders the page without
// calling the flight service.
func (c *AirportController) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if runes := []rune(query); len(runes) > maxAirportQuery {
		query = string(runes[:maxAirportQuery])
	}
	page := view.AirportsPage{Query: query}
	if query == "" {
		c.pages.write(w, http.StatusOK, view.PageAirports, page)
		return
	}

	airports, err := c.api.SearchAirports(r.Context(), query)
	if err != nil {
		c.logger.Info("Airport search failed", "query", query, "error", err)
		page.Error = tripapi.UserMessage(err, msgAirportsFailed)
		c.pages.write(w, http.StatusBadGateway, view.PageAirports, page)
		return
	}
	page.Airports = airports
	c.pages.write(w, http.StatusOK, view.PageAirports, page)
}
