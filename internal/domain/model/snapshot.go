// Package model contains the snapshot value types passed between layers.
package model

import "sort"

// MaxPlayers bounds the player directory. Slots run 1..MaxPlayers.
const MaxPlayers = 12

// Keys for the built-in point sources. Custom events use their own id.
const (
	EventGolf        = "golf"
	EventTrivia      = "trivia"
	EventPredictions = "predictions"
)

// Award slots for individual golf bonuses.
const (
	AwardLongDrive  = "longDrive"
	AwardClosestPin = "closestPin"
)

// Player is a directory entry. The slot is the stable identity; the name is
// a current-snapshot label and may change mid-competition.
type Player struct {
	Slot int
	Name string
}

// IsAdmin reports whether the player holds the organizer slot.
func (p Player) IsAdmin() bool { return p.Slot == 1 }

// Team maps a golf team number to its rostered player names.
type Team struct {
	Number int
	Roster []string
}

// GolfScore holds one team's raw stroke counts. A nil nine has not been
// entered yet; that is a legitimate state, not an error.
type GolfScore struct {
	Front9 *int
	Back9  *int
}

// ParSettings configure par-relative scoring. Global, not per team.
type ParSettings struct {
	Front9Par      int
	Back9Par       int
	BasePointsPer9 int
}

// BonusSettings configure the point values of the golf bonuses.
type BonusSettings struct {
	BestFront     int
	BestBack      int
	OverallWinner int
	Shotgun       int
}

// BonusAward assigns an individual bonus (long drive, closest to the pin)
// to a player by name. An empty player name means not yet awarded.
type BonusAward struct {
	Player string
	Points int
}

// ScoringMode selects how a custom event distributes points.
type ScoringMode string

const (
	ScoreByTeam   ScoringMode = "team"
	ScoreByPlayer ScoringMode = "individual"
)

// EventTeam is one team's roster and result within a custom-event round.
type EventTeam struct {
	Roster []string
	Points int
}

// EventRound groups the teams of a single round of a team-scored event.
type EventRound struct {
	Teams []EventTeam
}

// CustomEvent is an organizer-defined mini event. Team-scored events carry
// per-round rosters and results; individually-scored events carry direct
// per-player awards.
type CustomEvent struct {
	ID     string
	Name   string
	Order  int
	Mode   ScoringMode
	Rounds []EventRound
	Points map[string]int
}

// PlayerPoints flattens the event results into a player-name -> points map.
// Team-scored events credit the whole team value to every rostered member,
// summed across rounds. Individually-scored events copy the awards as-is.
func (e CustomEvent) PlayerPoints() map[string]int {
	if e.Mode == ScoreByPlayer {
		pts := make(map[string]int, len(e.Points))
		for name, p := range e.Points {
			pts[name] = p
		}
		return pts
	}
	pts := make(map[string]int)
	for _, round := range e.Rounds {
		for _, team := range round.Teams {
			for _, name := range team.Roster {
				pts[name] += team.Points
			}
		}
	}
	return pts
}

// Snapshot is a consistent point-in-time view of every raw record the engine
// consumes. The storage collaborator builds one per refresh; the engine never
// mutates it, so concurrent computations over the same snapshot are safe.
type Snapshot struct {
	Players     []Player
	Teams       []Team
	Scores      map[int]GolfScore
	Par         ParSettings
	Bonus       BonusSettings
	Shotguns    map[int]int
	Awards      map[string]BonusAward
	Events      []CustomEvent
	Trivia      map[string]int
	Predictions map[string]int
	Completed   map[string]bool
	Closed      bool
}

// SortedEvents returns the custom events ordered by their Order field.
// Equal orders keep their stored position.
func (s Snapshot) SortedEvents() []CustomEvent {
	events := make([]CustomEvent, len(s.Events))
	copy(events, s.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Order < events[j].Order })
	return events
}

// Directory indexes players by their current display name. Rosters and point
// maps key on names, so this is the join table back to stable slots.
func (s Snapshot) Directory() map[string]Player {
	dir := make(map[string]Player, len(s.Players))
	for _, p := range s.Players {
		dir[p.Name] = p
	}
	return dir
}

// CompletedEvent reports whether an event's results are final enough to
// appear on the progression chart.
func (s Snapshot) CompletedEvent(key string) bool { return s.Completed[key] }
