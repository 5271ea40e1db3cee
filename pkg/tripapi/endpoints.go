package tripapi

import (
	"context"
	"net/url"

	"fast-trip/model"
)

const (
	EndpointChat           = "chat/chat"
	EndpointFlightSearch   = "flights/search"
	EndpointAirportsPrefix = "flights/airports/"
)

// Chat forwards one user message to the conversational API.
func (c *Client) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	var resp model.ChatResponse
	if err := c.Post(ctx, EndpointChat, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SearchFlights(ctx context.Context, req model.FlightSearchRequest) (*model.FlightsResponse, error) {
	var resp model.FlightsResponse
	if err := c.Post(ctx, EndpointFlightSearch, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchAirports looks up airports whose code or name matches query.
func (c *Client) SearchAirports(ctx context.Context, query string) ([]model.Airport, error) {
	var resp struct {
		Airports []model.Airport `json:"airports"`
	}
	if err := c.Get(ctx, EndpointAirportsPrefix+url.PathEscape(query), &resp); err != nil {
		return nil, err
	}
	return resp.Airports, nil
}
