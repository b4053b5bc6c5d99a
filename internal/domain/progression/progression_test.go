package progression_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tgoode/weekendcup/internal/domain/model"
	"github.com/tgoode/weekendcup/internal/domain/progression"
)

func chartSnapshot() model.Snapshot {
	return model.Snapshot{
		Players: []model.Player{
			{Slot: 1, Name: "Walt"},
			{Slot: 2, Name: "Jesse"},
		},
		Teams: []model.Team{
			{Number: 1, Roster: []string{"Walt"}},
			{Number: 2, Roster: []string{"Jesse"}},
		},
		// No strokes recorded: golf points come from shotguns only, which
		// keeps the arithmetic easy to follow.
		Bonus:    model.BonusSettings{Shotgun: 1},
		Shotguns: map[int]int{1: 5, 2: 2},
		Events: []model.CustomEvent{
			{ID: "darts", Name: "Darts", Order: 1, Mode: model.ScoreByPlayer,
				Points: map[string]int{"Walt": 2, "Jesse": 6}},
		},
		Trivia:      map[string]int{"Walt": 3, "Jesse": 1},
		Predictions: map[string]int{"Jesse": 10},
		Completed:   map[string]bool{},
	}
}

func TestCumulative(t *testing.T) {
	Convey("Given no completed events", t, func() {
		snap := chartSnapshot()
		series := progression.Cumulative(snap)

		Convey("Then every player has only the Start point", func() {
			So(series.EventLabels, ShouldResemble, []string{"Start"})
			for _, p := range series.Players {
				So(p.Cumulative, ShouldResemble, []int{0})
			}
		})
	})

	Convey("Given golf and trivia completed", t, func() {
		snap := chartSnapshot()
		snap.Completed = map[string]bool{model.EventGolf: true, model.EventTrivia: true}
		series := progression.Cumulative(snap)

		Convey("Then the series is a prefix sum over golf then trivia", func() {
			So(series.EventLabels, ShouldResemble, []string{"Start", "Golf", "Trivia"})
			// Walt: golf 5, trivia 3.
			So(series.Players[0].Name, ShouldEqual, "Walt")
			So(series.Players[0].Cumulative, ShouldResemble, []int{0, 5, 8})
		})
	})

	Convey("Given every event completed", t, func() {
		snap := chartSnapshot()
		snap.Completed = map[string]bool{
			model.EventGolf:        true,
			model.EventTrivia:      true,
			model.EventPredictions: true,
			"darts":                true,
		}
		series := progression.Cumulative(snap)

		Convey("Then categories run golf, custom, trivia, predictions last", func() {
			So(series.EventLabels, ShouldResemble,
				[]string{"Start", "Golf", "Darts", "Trivia", "Predictions"})
		})

		Convey("Then players are ordered by final cumulative value descending", func() {
			// Jesse finishes 2+6+1+10=19, Walt 5+2+3=10.
			So(series.Players[0].Name, ShouldEqual, "Jesse")
			So(series.Players[0].Cumulative, ShouldResemble, []int{0, 2, 8, 9, 19})
			So(series.Players[1].Name, ShouldEqual, "Walt")
			So(series.Players[1].Cumulative, ShouldResemble, []int{0, 5, 7, 10, 10})
		})
	})

	Convey("Given predictions completed but trivia not", t, func() {
		snap := chartSnapshot()
		snap.Completed = map[string]bool{
			model.EventGolf:        true,
			model.EventPredictions: true,
		}
		series := progression.Cumulative(snap)

		Convey("Then predictions still land as the final point", func() {
			So(series.EventLabels, ShouldResemble, []string{"Start", "Golf", "Predictions"})
		})
	})

	Convey("Given custom events completed out of definition order", t, func() {
		snap := chartSnapshot()
		snap.Events = append(snap.Events, model.CustomEvent{
			ID: "cornhole", Name: "Cornhole", Order: 0, Mode: model.ScoreByPlayer,
			Points: map[string]int{"Walt": 1},
		})
		snap.Completed = map[string]bool{"darts": true, "cornhole": true}
		series := progression.Cumulative(snap)

		Convey("Then the order field decides chart position", func() {
			So(series.EventLabels, ShouldResemble, []string{"Start", "Cornhole", "Darts"})
		})
	})

	Convey("Given players tied on the final value", t, func() {
		snap := chartSnapshot()
		snap.Shotguns = map[int]int{1: 2, 2: 2}
		snap.Completed = map[string]bool{model.EventGolf: true}
		series := progression.Cumulative(snap)

		Convey("Then ties keep slot order", func() {
			So(series.Players[0].Name, ShouldEqual, "Walt")
			So(series.Players[1].Name, ShouldEqual, "Jesse")
		})
	})
}
