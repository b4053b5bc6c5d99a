// Command seed fills a database with a small sample weekend so the API has
// something to show during development.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/tgoode/weekendcup/internal/adapters/repository"
	"github.com/tgoode/weekendcup/internal/domain/model"
	"github.com/tgoode/weekendcup/pkg/logger"
)

type options struct {
	DBPath string `long:"db" default:"weekendcup.db" description:"Path to the sqlite database file"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()
	ctx := context.Background()

	store, err := repository.NewGormStore(ctx, repository.WithPath(opts.DBPath))
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	if err := seed(ctx, store); err != nil {
		log.Error(ctx, "seeding failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "sample weekend seeded", logger.String("db", opts.DBPath))
}

func seed(ctx context.Context, store repository.Store) error {
	players := []model.Player{
		{Slot: 1, Name: "Tom"},
		{Slot: 2, Name: "Ben"},
		{Slot: 3, Name: "Chris"},
		{Slot: 4, Name: "Dave"},
		{Slot: 5, Name: "Eric"},
		{Slot: 6, Name: "Frank"},
	}
	for _, p := range players {
		if err := store.UpsertPlayer(ctx, p); err != nil {
			return err
		}
	}

	teams := []model.Team{
		{Number: 1, Roster: []string{"Tom", "Ben"}},
		{Number: 2, Roster: []string{"Chris", "Dave"}},
		{Number: 3, Roster: []string{"Eric", "Frank"}},
	}
	for _, t := range teams {
		if err := store.UpsertTeam(ctx, t); err != nil {
			return err
		}
	}

	front1, back1 := 34, 38
	front2, back2 := 36, 35
	front3 := 41
	scores := map[int]struct {
		score    model.GolfScore
		shotguns int
	}{
		1: {model.GolfScore{Front9: &front1, Back9: &back1}, 2},
		2: {model.GolfScore{Front9: &front2, Back9: &back2}, 0},
		3: {model.GolfScore{Front9: &front3}, 1},
	}
	for number, entry := range scores {
		if err := store.RecordGolfScore(ctx, number, entry.score, entry.shotguns); err != nil {
			return err
		}
	}

	if err := store.SetAward(ctx, model.AwardLongDrive, model.BonusAward{Player: "Ben", Points: 5}); err != nil {
		return err
	}

	cornhole := model.CustomEvent{
		Name:  "Cornhole",
		Order: 1,
		Mode:  model.ScoreByTeam,
		Rounds: []model.EventRound{
			{Teams: []model.EventTeam{
				{Roster: []string{"Tom", "Dave"}, Points: 4},
				{Roster: []string{"Ben", "Chris"}, Points: 2},
				{Roster: []string{"Eric", "Frank"}, Points: 0},
			}},
		},
	}
	if _, err := store.CreateEvent(ctx, cornhole); err != nil {
		return err
	}

	darts := model.CustomEvent{
		Name:   "Darts",
		Order:  2,
		Mode:   model.ScoreByPlayer,
		Points: map[string]int{"Chris": 6, "Eric": 3, "Tom": 1},
	}
	if _, err := store.CreateEvent(ctx, darts); err != nil {
		return err
	}

	if err := store.SetPoints(ctx, model.EventTrivia, map[string]int{
		"Tom": 3, "Ben": 9, "Chris": 5, "Dave": 1, "Eric": 7, "Frank": 2,
	}); err != nil {
		return err
	}
	if err := store.SetPoints(ctx, model.EventPredictions, map[string]int{
		"Tom": 10, "Chris": 5,
	}); err != nil {
		return err
	}

	return store.SetCompleted(ctx, model.EventGolf, true)
}
