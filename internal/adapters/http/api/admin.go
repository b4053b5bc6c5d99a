package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tgoode/weekendcup/internal/adapters/repository"
	service "github.com/tgoode/weekendcup/internal/app"
	"github.com/tgoode/weekendcup/internal/domain/model"
	"github.com/tgoode/weekendcup/pkg/logger"
)

type putPlayerRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type putTeamRequest struct {
	Roster []string `json:"roster" validate:"required,min=1,max=6,dive,required,max=64"`
}

type putGolfScoreRequest struct {
	Front9   *int `json:"front9" validate:"omitempty,min=20,max=99"`
	Back9    *int `json:"back9" validate:"omitempty,min=20,max=99"`
	Shotguns int  `json:"shotguns" validate:"min=0,max=18"`
}

type putGolfSettingsRequest struct {
	Front9Par      int `json:"front9_par" validate:"min=27,max=45"`
	Back9Par       int `json:"back9_par" validate:"min=27,max=45"`
	BasePointsPer9 int `json:"base_points_per9" validate:"min=0,max=50"`
	BestFront      int `json:"best_front" validate:"min=0,max=50"`
	BestBack       int `json:"best_back" validate:"min=0,max=50"`
	OverallWinner  int `json:"overall_winner" validate:"min=0,max=50"`
	Shotgun        int `json:"shotgun" validate:"min=0,max=50"`
}

type putAwardRequest struct {
	Player string `json:"player" validate:"max=64"`
	Points int    `json:"points" validate:"min=0,max=50"`
}

type eventRoundRequest struct {
	Teams []eventTeamRequest `json:"teams" validate:"required,min=1,dive"`
}

type eventTeamRequest struct {
	Roster []string `json:"roster" validate:"required,min=1,dive,required,max=64"`
	Points int      `json:"points"`
}

type eventRequest struct {
	Name   string              `json:"name" validate:"required,max=64"`
	Order  int                 `json:"order" validate:"min=0"`
	Mode   string              `json:"mode" validate:"required,oneof=team individual"`
	Rounds []eventRoundRequest `json:"rounds" validate:"omitempty,dive"`
	Points map[string]int      `json:"points"`
}

type completedRequest struct {
	Done bool `json:"done"`
}

type closedRequest struct {
	Closed bool `json:"closed"`
}

// pathInt parses a positive integer URL parameter.
func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrBadRequest, name)
	}
	return n, nil
}

// handlePutPlayer handles PUT /players/{slot}.
func (s *Server) handlePutPlayer(w http.ResponseWriter, r *http.Request) {
	slot, err := pathInt(r, "slot")
	if err != nil || slot > model.MaxPlayers {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	var req putPlayerRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := s.deps.SavePlayer(r.Context(), model.Player{Slot: slot, Name: req.Name}); err != nil {
		s.writeStoreError(w, r, "save player", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePutTeam handles PUT /teams/{number}.
func (s *Server) handlePutTeam(w http.ResponseWriter, r *http.Request) {
	number, err := pathInt(r, "number")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req putTeamRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := s.deps.SaveTeam(r.Context(), model.Team{Number: number, Roster: req.Roster}); err != nil {
		s.writeStoreError(w, r, "save team", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePutGolfScore handles PUT /golf/scores/{team}. An absent nine stays
// unentered; clearing a nine is done by omitting it.
func (s *Server) handlePutGolfScore(w http.ResponseWriter, r *http.Request) {
	team, err := pathInt(r, "team")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req putGolfScoreRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	score := model.GolfScore{Front9: req.Front9, Back9: req.Back9}
	if err := s.deps.SaveGolfScore(r.Context(), team, score, req.Shotguns); err != nil {
		s.writeStoreError(w, r, "save golf score", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePutGolfSettings handles PUT /golf/settings, replacing the par and
// bonus configuration in one shot.
func (s *Server) handlePutGolfSettings(w http.ResponseWriter, r *http.Request) {
	var req putGolfSettingsRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	par := model.ParSettings{Front9Par: req.Front9Par, Back9Par: req.Back9Par, BasePointsPer9: req.BasePointsPer9}
	if err := s.deps.SavePar(r.Context(), par); err != nil {
		s.writeStoreError(w, r, "save par settings", err)
		return
	}
	bonus := model.BonusSettings{BestFront: req.BestFront, BestBack: req.BestBack, OverallWinner: req.OverallWinner, Shotgun: req.Shotgun}
	if err := s.deps.SaveBonus(r.Context(), bonus); err != nil {
		s.writeStoreError(w, r, "save bonus settings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePutAward handles PUT /golf/awards/{slot} for the individual golf
// bonuses. An empty player name clears the award.
func (s *Server) handlePutAward(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	var req putAwardRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	err := s.deps.SaveAward(r.Context(), slot, model.BonusAward{Player: req.Player, Points: req.Points})
	if errors.Is(err, service.ErrUnknownAward) {
		writeError(w, http.StatusNotFound, "unknown_award", err)
		return
	}
	if err != nil {
		s.writeStoreError(w, r, "save award", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (req eventRequest) toModel(id string) model.CustomEvent {
	ev := model.CustomEvent{
		ID:    id,
		Name:  req.Name,
		Order: req.Order,
		Mode:  model.ScoringMode(req.Mode),
	}
	if ev.Mode == model.ScoreByPlayer {
		ev.Points = req.Points
		return ev
	}
	ev.Rounds = make([]model.EventRound, len(req.Rounds))
	for i, round := range req.Rounds {
		teams := make([]model.EventTeam, len(round.Teams))
		for j, team := range round.Teams {
			teams[j] = model.EventTeam{Roster: team.Roster, Points: team.Points}
		}
		ev.Rounds[i] = model.EventRound{Teams: teams}
	}
	return ev
}

// handlePostEvent handles POST /events.
func (s *Server) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	created, err := s.deps.CreateEvent(r.Context(), req.toModel(""))
	if err != nil {
		s.writeStoreError(w, r, "create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, eventView{ID: created.ID, Name: created.Name, Order: created.Order, Mode: string(created.Mode)})
}

// handlePutEvent handles PUT /events/{id}.
func (s *Server) handlePutEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req eventRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	err := s.deps.UpdateEvent(r.Context(), req.toModel(id))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	if err != nil {
		s.writeStoreError(w, r, "update event", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDeleteEvent handles DELETE /events/{id}.
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.deps.DeleteEvent(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	if err != nil {
		s.writeStoreError(w, r, "delete event", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePutPoints handles PUT /points/{category}, replacing the per-player
// point map for the trivia or predictions category.
func (s *Server) handlePutPoints(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var points map[string]int
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&points); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	err := s.deps.SavePoints(r.Context(), category, points)
	if errors.Is(err, repository.ErrUnknownCategory) {
		writeError(w, http.StatusNotFound, "unknown_category", err)
		return
	}
	if err != nil {
		s.writeStoreError(w, r, "save points", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePutCompleted handles PUT /completed/{event}, flipping an event's
// progression-chart eligibility.
func (s *Server) handlePutCompleted(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "event")
	var req completedRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	err := s.deps.SetCompleted(r.Context(), key, req.Done)
	if errors.Is(err, service.ErrUnknownEvent) {
		writeError(w, http.StatusNotFound, "unknown_event", err)
		return
	}
	if err != nil {
		s.writeStoreError(w, r, "set completed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePutClosed handles PUT /closed.
func (s *Server) handlePutClosed(w http.ResponseWriter, r *http.Request) {
	var req closedRequest
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := s.deps.SetClosed(r.Context(), req.Closed); err != nil {
		s.writeStoreError(w, r, "set closed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(r.Context(), op+" failed", logger.Error(err))
	writeError(w, http.StatusInternalServerError, "internal", nil)
}
