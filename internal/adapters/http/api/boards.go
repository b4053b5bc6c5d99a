package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/tgoode/weekendcup/internal/app"
	"github.com/tgoode/weekendcup/pkg/logger"
)

// handleLeaderboard handles GET /leaderboard.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.Leaderboard(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "leaderboard query failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleEventBoard handles GET /leaderboard/{event}. The golf key ranks
// teams; every other known key ranks players.
func (s *Server) handleEventBoard(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "event")
	board, err := s.deps.EventBoard(r.Context(), key)
	if errors.Is(err, service.ErrUnknownEvent) {
		writeError(w, http.StatusNotFound, "unknown_event", err)
		return
	}
	if err != nil {
		s.logger.Error(r.Context(), "event board query failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// handleBreakdowns handles GET /golf/breakdowns.
func (s *Server) handleBreakdowns(w http.ResponseWriter, r *http.Request) {
	breakdowns, err := s.deps.Breakdowns(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "breakdown query failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	writeJSON(w, http.StatusOK, breakdowns)
}

// handlePodium handles GET /podium. Before the competition closes, or with
// fewer than three ranked players, the podium is explicitly unavailable.
func (s *Server) handlePodium(w http.ResponseWriter, r *http.Request) {
	podium, err := s.deps.Podium(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "podium query failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	if podium == nil {
		writeJSON(w, http.StatusOK, map[string]any{"available": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"available": true, "podium": podium})
}

// handleProgression handles GET /progression.
func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	chart, err := s.deps.Progression(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "progression query failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

type playerView struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
}

// handlePlayers handles GET /players.
func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.deps.Players(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "player query failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	views := make([]playerView, len(players))
	for i, p := range players {
		views[i] = playerView{Slot: p.Slot, Name: p.Name}
	}
	writeJSON(w, http.StatusOK, views)
}

type eventView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
	Mode  string `json:"mode"`
}

// handleListEvents handles GET /events, ordered for display.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.deps.Events(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "event query failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}
	views := make([]eventView, len(events))
	for i, ev := range events {
		views[i] = eventView{ID: ev.ID, Name: ev.Name, Order: ev.Order, Mode: string(ev.Mode)}
	}
	writeJSON(w, http.StatusOK, views)
}
