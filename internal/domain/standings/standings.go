// Package standings aggregates every point source into per-player vectors
// and ranks them.
//
// Rosters and point maps key on current display names, so every computation
// resolves names against the snapshot directory at entry and carries the
// stable slot from there on. A rename between snapshots never moves
// historical points because attribution happens per call, per snapshot.
package standings

import (
	"sort"

	"github.com/tgoode/weekendcup/internal/domain/golf"
	"github.com/tgoode/weekendcup/internal/domain/model"
)

// Vector is one player's per-event point columns. Events holds one column
// per custom event id; Total is always the sum of every other column.
type Vector struct {
	Golf        int
	Trivia      int
	Predictions int
	Events      map[string]int
	Total       int
}

// Standing pairs a directory player with their point vector.
type Standing struct {
	Slot   int
	Name   string
	Vector Vector
}

// PlayerPoints builds one vector per directory player, ordered by slot.
// Every recognized column is seeded with zero so the output shape is
// identical whether or not an event has results yet. Names appearing in a
// roster or point map without a directory entry are dropped.
func PlayerPoints(snap model.Snapshot) []Standing {
	players := make([]model.Player, len(snap.Players))
	copy(players, snap.Players)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Slot < players[j].Slot })

	events := snap.SortedEvents()

	rows := make([]Standing, len(players))
	index := make(map[string]int, len(players))
	for i, p := range players {
		v := Vector{Events: make(map[string]int, len(events))}
		for _, ev := range events {
			v.Events[ev.ID] = 0
		}
		rows[i] = Standing{Slot: p.Slot, Name: p.Name, Vector: v}
		index[p.Name] = i
	}

	// Golf credits the whole team total to every rostered member. Shared
	// credit, not split credit. A player rostered on two teams collects both.
	breakdowns := golf.Breakdowns(snap)
	for _, team := range snap.Teams {
		grand := breakdowns[team.Number].GrandTotal
		for _, name := range team.Roster {
			if i, ok := index[name]; ok {
				rows[i].Vector.Golf += grand
			}
		}
	}

	// Individual bonuses (long drive, closest to the pin) credit the named
	// player's golf column directly.
	for _, award := range snap.Awards {
		if i, ok := index[award.Player]; ok {
			rows[i].Vector.Golf += award.Points
		}
	}

	for _, ev := range events {
		for name, pts := range ev.PlayerPoints() {
			if i, ok := index[name]; ok {
				rows[i].Vector.Events[ev.ID] = pts
			}
		}
	}

	for name, pts := range snap.Trivia {
		if i, ok := index[name]; ok {
			rows[i].Vector.Trivia = pts
		}
	}
	for name, pts := range snap.Predictions {
		if i, ok := index[name]; ok {
			rows[i].Vector.Predictions = pts
		}
	}

	for i := range rows {
		v := &rows[i].Vector
		v.Total = v.Golf + v.Trivia + v.Predictions
		for _, pts := range v.Events {
			v.Total += pts
		}
	}

	return rows
}
