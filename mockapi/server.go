// Package mockapi is a local stand-in for the conversational and
// flight-search services. The intake fills one field per message and the
// flight search returns random offers priced by budget.
package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fast-trip/model"
)

type Server struct {
	conversations *ConversationStore
	flights       *FlightGenerator
	logger        *slog.Logger
}

func NewServer(flights *FlightGenerator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		conversations: NewConversationStore(),
		flights:       flights,
		logger:        logger,
	}
}

// Handler serves the API at the root; mount it under the base path the
// front-end is configured with.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/chat", s.handleChat)
	mux.HandleFunc("POST /flights/search", s.handleSearch)
	mux.HandleFunc("GET /flights/airports/{query}", s.handleAirports)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	return mux
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	resp := s.conversations.Chat(req)
	s.logger.Debug("Mock chat",
		"session_id", resp.SessionID,
		"complete", resp.ConversationComplete)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req model.FlightSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.flights.Search(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.Debug("Mock flight search",
		"origin", req.Origin,
		"destination", req.Destination,
		"offers", len(resp.Offers),
		"total", resp.TotalResults)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]model.Airport{
		"airports": SearchAirports(r.PathValue("query")),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
