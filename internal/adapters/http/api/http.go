// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tgoode/weekendcup/internal/domain/model"
	"github.com/tgoode/weekendcup/internal/domain/types"
	"github.com/tgoode/weekendcup/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose computed scoreboard views.
	Leaderboard(ctx context.Context) ([]types.Entry, error)
	EventBoard(ctx context.Context, key string) ([]types.BoardEntry, error)
	Breakdowns(ctx context.Context) ([]types.TeamBreakdown, error)
	Podium(ctx context.Context) (*types.Podium, error)
	Progression(ctx context.Context) (types.Chart, error)
	Players(ctx context.Context) ([]model.Player, error)
	Events(ctx context.Context) ([]model.CustomEvent, error)

	// Write operations mutate the raw records behind the snapshot.
	SavePlayer(ctx context.Context, p model.Player) error
	SaveTeam(ctx context.Context, t model.Team) error
	SaveGolfScore(ctx context.Context, teamNumber int, score model.GolfScore, shotguns int) error
	SavePar(ctx context.Context, par model.ParSettings) error
	SaveBonus(ctx context.Context, bonus model.BonusSettings) error
	SaveAward(ctx context.Context, slot string, award model.BonusAward) error
	CreateEvent(ctx context.Context, ev model.CustomEvent) (model.CustomEvent, error)
	UpdateEvent(ctx context.Context, ev model.CustomEvent) error
	DeleteEvent(ctx context.Context, id string) error
	SavePoints(ctx context.Context, category string, points map[string]int) error
	SetCompleted(ctx context.Context, eventKey string, done bool) error
	SetClosed(ctx context.Context, closed bool) error

	// Authenticate verifies the admin credential.
	Authenticate(ctx context.Context, username, password string) error
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats(ctx context.Context) map[string]interface{}
}

// Server wires HTTP routes for the scoreboard API.
type Server struct {
	deps       Dependencies
	stats      StatsProvider
	validate   *validator.Validate
	logger     logger.Logger
	jwtKey     []byte
	sessionTTL time.Duration
	loginRate  string
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithJWTKey sets the HMAC key used to sign session tokens. A server
// without a key refuses every admin request.
func WithJWTKey(key []byte) Option {
	return func(s *Server) {
		s.jwtKey = key
	}
}

// WithSessionTTL sets how long an issued session token stays valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithLoginRateLimit sets the login throttle in limiter format, e.g. "10-M".
func WithLoginRateLimit(rate string) Option {
	return func(s *Server) {
		if rate != "" {
			s.loginRate = rate
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, stats StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:       deps,
		stats:      stats,
		validate:   validator.New(),
		sessionTTL: time.Hour,
		loginRate:  "10-M",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", metricsHandler("healthz", s.handleHealth))
	r.Get("/metrics", metricsHandler("metrics", s.handleMetrics))
	r.Get("/stats", metricsHandler("stats", s.handleStats))

	r.Get("/leaderboard", metricsHandler("leaderboard", s.handleLeaderboard))
	r.Get("/leaderboard/{event}", metricsHandler("leaderboard_event", s.handleEventBoard))
	r.Get("/golf/breakdowns", metricsHandler("golf_breakdowns", s.handleBreakdowns))
	r.Get("/podium", metricsHandler("podium", s.handlePodium))
	r.Get("/progression", metricsHandler("progression", s.handleProgression))
	r.Get("/players", metricsHandler("players", s.handlePlayers))
	r.Get("/events", metricsHandler("events", s.handleListEvents))

	r.Post("/login", metricsHandler("login", s.rateLimited(s.handleLogin)))
	r.Post("/logout", metricsHandler("logout", s.handleLogout))

	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Put("/players/{slot}", metricsHandler("admin_player", s.handlePutPlayer))
		r.Put("/teams/{number}", metricsHandler("admin_team", s.handlePutTeam))
		r.Put("/golf/scores/{team}", metricsHandler("admin_golf_score", s.handlePutGolfScore))
		r.Put("/golf/settings", metricsHandler("admin_golf_settings", s.handlePutGolfSettings))
		r.Put("/golf/awards/{slot}", metricsHandler("admin_golf_award", s.handlePutAward))
		r.Post("/events", metricsHandler("admin_event_create", s.handlePostEvent))
		r.Put("/events/{id}", metricsHandler("admin_event_update", s.handlePutEvent))
		r.Delete("/events/{id}", metricsHandler("admin_event_delete", s.handleDeleteEvent))
		r.Put("/points/{category}", metricsHandler("admin_points", s.handlePutPoints))
		r.Put("/completed/{event}", metricsHandler("admin_completed", s.handlePutCompleted))
		r.Put("/closed", metricsHandler("admin_closed", s.handlePutClosed))
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeBody parses and validates a JSON request body into dst.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
