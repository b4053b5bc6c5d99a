// Package progression builds the cumulative score-over-events chart series.
package progression

import (
	"sort"

	"github.com/tgoode/weekendcup/internal/domain/model"
	"github.com/tgoode/weekendcup/internal/domain/standings"
)

// StartLabel is the implicit first chart point shared by every player.
const StartLabel = "Start"

// PlayerSeries is one player's running total across the plotted events.
type PlayerSeries struct {
	Name       string
	Cumulative []int
}

// Series is the full chart: one label per plotted event (preceded by
// StartLabel) and one cumulative line per player.
type Series struct {
	EventLabels []string
	Players     []PlayerSeries
}

// column pairs a chart label with the vector field it plots.
type column struct {
	label  string
	points func(standings.Vector) int
}

// Cumulative builds the chart from a snapshot. Events enter the series in
// fixed category precedence golf -> custom events (by order) -> trivia, and
// only when flagged completed. Completed predictions always land as the
// final point regardless of the other categories. With zero completed events
// every player's series is the single Start point; callers treat that as
// insufficient data, not an error.
func Cumulative(snap model.Snapshot) Series {
	var cols []column
	if snap.CompletedEvent(model.EventGolf) {
		cols = append(cols, column{"Golf", func(v standings.Vector) int { return v.Golf }})
	}
	for _, ev := range snap.SortedEvents() {
		if !snap.CompletedEvent(ev.ID) {
			continue
		}
		id := ev.ID
		cols = append(cols, column{ev.Name, func(v standings.Vector) int { return v.Events[id] }})
	}
	if snap.CompletedEvent(model.EventTrivia) {
		cols = append(cols, column{"Trivia", func(v standings.Vector) int { return v.Trivia }})
	}
	if snap.CompletedEvent(model.EventPredictions) {
		cols = append(cols, column{"Predictions", func(v standings.Vector) int { return v.Predictions }})
	}

	labels := make([]string, 0, len(cols)+1)
	labels = append(labels, StartLabel)
	for _, c := range cols {
		labels = append(labels, c.label)
	}

	rows := standings.PlayerPoints(snap)
	players := make([]PlayerSeries, len(rows))
	for i, row := range rows {
		cumulative := make([]int, 0, len(cols)+1)
		running := 0
		cumulative = append(cumulative, running)
		for _, c := range cols {
			running += c.points(row.Vector)
			cumulative = append(cumulative, running)
		}
		players[i] = PlayerSeries{Name: row.Name, Cumulative: cumulative}
	}

	// Order lines by final cumulative value descending, ties stable. Same
	// comparator rule as ranking, applied independently so chart and table
	// never couple across calls.
	sort.SliceStable(players, func(i, j int) bool {
		return final(players[i]) > final(players[j])
	})

	return Series{EventLabels: labels, Players: players}
}

func final(s PlayerSeries) int {
	return s.Cumulative[len(s.Cumulative)-1]
}
