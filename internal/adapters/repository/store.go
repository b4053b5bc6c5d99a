// Package repository persists the raw competition records and serves the
// engine consistent point-in-time snapshots of them.
package repository

import (
	"context"

	"github.com/tgoode/weekendcup/internal/domain/model"
)

// Store owns every raw record the engine consumes. Writes come from the
// admin surface; reads happen exclusively through Snapshot so each
// computation sees one consistent view.
type Store interface {
	// Snapshot loads every raw record into a single immutable view.
	Snapshot(ctx context.Context) (model.Snapshot, error)

	UpsertPlayer(ctx context.Context, p model.Player) error
	UpsertTeam(ctx context.Context, t model.Team) error

	// RecordGolfScore replaces a team's strokes and shotgun count. Nil nines
	// mean not yet entered and clear any previously stored value.
	RecordGolfScore(ctx context.Context, teamNumber int, score model.GolfScore, shotguns int) error
	UpdatePar(ctx context.Context, par model.ParSettings) error
	UpdateBonus(ctx context.Context, bonus model.BonusSettings) error
	SetAward(ctx context.Context, slot string, award model.BonusAward) error

	// CreateEvent stores a custom event, assigning an id when none is given,
	// and returns the stored event.
	CreateEvent(ctx context.Context, ev model.CustomEvent) (model.CustomEvent, error)
	UpdateEvent(ctx context.Context, ev model.CustomEvent) error
	DeleteEvent(ctx context.Context, id string) error

	// SetPoints replaces the whole point map of an opaque category
	// (trivia or predictions).
	SetPoints(ctx context.Context, category string, points map[string]int) error

	SetCompleted(ctx context.Context, eventKey string, done bool) error
	SetClosed(ctx context.Context, closed bool) error

	PasswordHash(ctx context.Context, username string) (string, error)
	SetPassword(ctx context.Context, username, hash string) error

	Close() error
}
