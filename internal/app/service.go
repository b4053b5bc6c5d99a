// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
//
// Every read method fetches one snapshot from the store and runs the pure
// domain computations over it. Nothing is cached between calls; two
// overlapping requests may see different snapshots and that is fine.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/tgoode/weekendcup/internal/adapters/repository"
	"github.com/tgoode/weekendcup/internal/domain/golf"
	"github.com/tgoode/weekendcup/internal/domain/model"
	"github.com/tgoode/weekendcup/internal/domain/progression"
	"github.com/tgoode/weekendcup/internal/domain/standings"
	"github.com/tgoode/weekendcup/internal/domain/types"
	"github.com/tgoode/weekendcup/pkg/logger"
	"github.com/tgoode/weekendcup/pkg/metrics"
)

// Service implements the API dependencies for the scoreboard.
type Service struct {
	store  repository.Store
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the raw-record store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Leaderboard computes the ranked overall table.
func (s *Service) Leaderboard(ctx context.Context) ([]types.Entry, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordLeaderboardQuery()

	ranked := standings.Rank(standings.PlayerPoints(snap))
	entries := make([]types.Entry, len(ranked))
	for i, row := range ranked {
		entries[i] = toEntry(i+1, row)
	}
	return entries, nil
}

// EventBoard computes a per-event sub-leaderboard. The golf key ranks teams;
// every other key ranks players on that column.
func (s *Service) EventBoard(ctx context.Context, key string) ([]types.BoardEntry, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !knownEventKey(snap, key) {
		return nil, ErrUnknownEvent
	}

	var rows []standings.Row
	if key == model.EventGolf {
		rows = standings.TeamBoard(snap)
	} else {
		rows = standings.EventBoard(snap, key)
	}

	board := make([]types.BoardEntry, len(rows))
	for i, row := range rows {
		board[i] = types.BoardEntry{Rank: i + 1, Label: row.Label, Points: row.Points}
	}
	return board, nil
}

// Breakdowns computes every team's golf scoring line, ordered by team number.
func (s *Service) Breakdowns(ctx context.Context) ([]types.TeamBreakdown, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	byTeam := golf.Breakdowns(snap)
	out := make([]types.TeamBreakdown, 0, len(snap.Teams))
	for _, team := range snap.Teams {
		b := byTeam[team.Number]
		view := types.TeamBreakdown{
			TeamNumber:    b.TeamNumber,
			Roster:        team.Roster,
			Front9Points:  b.Front9Points,
			Back9Points:   b.Back9Points,
			Front9Entered: b.Front9Entered,
			Back9Entered:  b.Back9Entered,
			TotalPoints:   b.TotalPoints,
			FrontBonus:    b.FrontBonus,
			BackBonus:     b.BackBonus,
			OverallBonus:  b.OverallBonus,
			ShotgunCount:  b.ShotgunCount,
			ShotgunPoints: b.ShotgunPoints,
			GrandTotal:    b.GrandTotal,
		}
		if b.Complete() {
			score := b.TotalScore
			view.TotalScore = &score
		}
		out = append(out, view)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamNumber < out[j].TeamNumber })
	return out, nil
}

// Podium returns the final top three once the competition is closed and at
// least three players are ranked. A nil podium means not available.
func (s *Service) Podium(ctx context.Context) (*types.Podium, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.Closed {
		return nil, nil
	}

	ranked := standings.Rank(standings.PlayerPoints(snap))
	podium, ok := standings.TopThree(ranked)
	if !ok {
		return nil, nil
	}
	return &types.Podium{
		First:  toEntry(1, podium.First),
		Second: toEntry(2, podium.Second),
		Third:  toEntry(3, podium.Third),
	}, nil
}

// Progression computes the cumulative chart series.
func (s *Service) Progression(ctx context.Context) (types.Chart, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return types.Chart{}, err
	}
	metrics.RecordChartQuery()

	series := progression.Cumulative(snap)
	chart := types.Chart{EventLabels: series.EventLabels, Series: make([]types.ChartSeries, len(series.Players))}
	for i, p := range series.Players {
		chart.Series[i] = types.ChartSeries{Name: p.Name, Cumulative: p.Cumulative}
	}
	return chart, nil
}

// Players lists the directory, ordered by slot.
func (s *Service) Players(ctx context.Context) ([]model.Player, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	players := make([]model.Player, len(snap.Players))
	copy(players, snap.Players)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Slot < players[j].Slot })
	return players, nil
}

// Events lists the custom events in display order.
func (s *Service) Events(ctx context.Context) ([]model.CustomEvent, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.SortedEvents(), nil
}

// Write-through operations. Validation of ranges happens at the API
// boundary; the store only sees well-formed values.

func (s *Service) SavePlayer(ctx context.Context, p model.Player) error {
	return s.store.UpsertPlayer(ctx, p)
}

func (s *Service) SaveTeam(ctx context.Context, t model.Team) error {
	return s.store.UpsertTeam(ctx, t)
}

func (s *Service) SaveGolfScore(ctx context.Context, teamNumber int, score model.GolfScore, shotguns int) error {
	return s.store.RecordGolfScore(ctx, teamNumber, score, shotguns)
}

func (s *Service) SavePar(ctx context.Context, par model.ParSettings) error {
	return s.store.UpdatePar(ctx, par)
}

func (s *Service) SaveBonus(ctx context.Context, bonus model.BonusSettings) error {
	return s.store.UpdateBonus(ctx, bonus)
}

func (s *Service) SaveAward(ctx context.Context, slot string, award model.BonusAward) error {
	if slot != model.AwardLongDrive && slot != model.AwardClosestPin {
		return ErrUnknownAward
	}
	return s.store.SetAward(ctx, slot, award)
}

func (s *Service) CreateEvent(ctx context.Context, ev model.CustomEvent) (model.CustomEvent, error) {
	return s.store.CreateEvent(ctx, ev)
}

func (s *Service) UpdateEvent(ctx context.Context, ev model.CustomEvent) error {
	return s.store.UpdateEvent(ctx, ev)
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return s.store.DeleteEvent(ctx, id)
}

func (s *Service) SavePoints(ctx context.Context, category string, points map[string]int) error {
	return s.store.SetPoints(ctx, category, points)
}

func (s *Service) SetCompleted(ctx context.Context, eventKey string, done bool) error {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !knownEventKey(snap, eventKey) {
		return ErrUnknownEvent
	}
	return s.store.SetCompleted(ctx, eventKey, done)
}

func (s *Service) SetClosed(ctx context.Context, closed bool) error {
	return s.store.SetClosed(ctx, closed)
}

// Authenticate checks an admin login against the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	hash, err := s.store.PasswordHash(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordLoginFailure()
		return ErrUnauthorized
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		metrics.RecordLoginFailure()
		return ErrUnauthorized
	}
	return nil
}

// EnsureAdmin seeds the admin credential on first start. An already-stored
// credential always wins; the configured password is only a bootstrap.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.store.PasswordHash(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: no credential stored for %q and no bootstrap password configured", ErrUnauthorized, username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}
	return s.store.SetPassword(ctx, username, string(hash))
}

// GetStats returns service statistics for monitoring and refreshes the
// directory gauges.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{}

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		s.logger.Warn(ctx, "stats snapshot failed", logger.Error(err))
		stats["error"] = err.Error()
		return stats
	}

	completed := 0
	for _, done := range snap.Completed {
		if done {
			completed++
		}
	}

	stats["players"] = len(snap.Players)
	stats["teams"] = len(snap.Teams)
	stats["customEvents"] = len(snap.Events)
	stats["completedEvents"] = completed
	stats["closed"] = snap.Closed

	metrics.UpdatePlayersTracked(len(snap.Players))
	metrics.UpdateTeamsTracked(len(snap.Teams))
	metrics.UpdateEventsCompleted(completed)

	return stats
}

func toEntry(rank int, row standings.Standing) types.Entry {
	events := make(map[string]int, len(row.Vector.Events))
	for id, pts := range row.Vector.Events {
		events[id] = pts
	}
	return types.Entry{
		Rank:        rank,
		Slot:        row.Slot,
		Name:        row.Name,
		Golf:        row.Vector.Golf,
		Trivia:      row.Vector.Trivia,
		Predictions: row.Vector.Predictions,
		Events:      events,
		Total:       row.Vector.Total,
	}
}

// knownEventKey reports whether key is a built-in category or a defined
// custom event id.
func knownEventKey(snap model.Snapshot, key string) bool {
	switch key {
	case model.EventGolf, model.EventTrivia, model.EventPredictions:
		return true
	}
	for _, ev := range snap.Events {
		if ev.ID == key {
			return true
		}
	}
	return false
}
