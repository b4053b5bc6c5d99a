package golf_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tgoode/weekendcup/internal/domain/golf"
	"github.com/tgoode/weekendcup/internal/domain/model"
)

func strokes(v int) *int { return &v }

func weekendSnapshot() model.Snapshot {
	return model.Snapshot{
		Teams: []model.Team{
			{Number: 1, Roster: []string{"Walt", "Jesse"}},
			{Number: 2, Roster: []string{"Hank", "Mike"}},
		},
		Scores: map[int]model.GolfScore{
			1: {Front9: strokes(34), Back9: strokes(38)},
			2: {Front9: strokes(36), Back9: strokes(35)},
		},
		Par:      model.ParSettings{Front9Par: 36, Back9Par: 36, BasePointsPer9: 10},
		Bonus:    model.BonusSettings{BestFront: 5, BestBack: 5, OverallWinner: 10, Shotgun: 1},
		Shotguns: map[int]int{1: 2},
	}
}

func TestNinePoints(t *testing.T) {
	Convey("Given par-relative nine scoring", t, func() {
		Convey("Then a nine played exactly at par is worth the base", func() {
			So(golf.NinePoints(36, 10, 36), ShouldEqual, 10)
		})

		Convey("Then each stroke under par adds a point", func() {
			So(golf.NinePoints(36, 10, 34), ShouldEqual, 12)
		})

		Convey("Then each stroke over par removes a point", func() {
			So(golf.NinePoints(36, 10, 38), ShouldEqual, 8)
		})

		Convey("Then many strokes over par goes negative", func() {
			So(golf.NinePoints(36, 10, 50), ShouldBeLessThan, 0)
		})
	})
}

func TestBreakdowns(t *testing.T) {
	Convey("Given a two-team field with complete scores", t, func() {
		snap := weekendSnapshot()
		breakdowns := golf.Breakdowns(snap)

		Convey("Then team 1 matches the worked example", func() {
			b := breakdowns[1]
			So(b.Front9Points, ShouldEqual, 12)
			So(b.Back9Points, ShouldEqual, 8)
			So(b.TotalPoints, ShouldEqual, 20)
			So(b.FrontBonus, ShouldEqual, 5)
			So(b.BackBonus, ShouldEqual, 0)
			So(b.OverallBonus, ShouldEqual, 0)
			So(b.ShotgunCount, ShouldEqual, 2)
			So(b.ShotgunPoints, ShouldEqual, 2)
			So(b.GrandTotal, ShouldEqual, 27)
			So(b.TotalScore, ShouldEqual, 72)
			So(b.Complete(), ShouldBeTrue)
		})

		Convey("Then team 2 takes the back-nine and overall bonuses", func() {
			b := breakdowns[2]
			So(b.FrontBonus, ShouldEqual, 0)
			So(b.BackBonus, ShouldEqual, 5)
			So(b.OverallBonus, ShouldEqual, 10)
			So(b.TotalScore, ShouldEqual, 71)
		})

		Convey("Then every grand total is additive", func() {
			for _, b := range breakdowns {
				sum := b.TotalPoints + b.FrontBonus + b.BackBonus + b.OverallBonus + b.ShotgunPoints
				So(b.GrandTotal, ShouldEqual, sum)
			}
		})
	})

	Convey("Given two teams tied for the lowest front nine", t, func() {
		snap := weekendSnapshot()
		snap.Scores[2] = model.GolfScore{Front9: strokes(34), Back9: strokes(39)}
		breakdowns := golf.Breakdowns(snap)

		Convey("Then both receive the best-front bonus", func() {
			So(breakdowns[1].FrontBonus, ShouldEqual, 5)
			So(breakdowns[2].FrontBonus, ShouldEqual, 5)
		})
	})

	Convey("Given a team with no front nine recorded", t, func() {
		snap := weekendSnapshot()
		snap.Scores[1] = model.GolfScore{Back9: strokes(38)}
		breakdowns := golf.Breakdowns(snap)

		Convey("Then it is excluded from the front-nine minimum search", func() {
			So(breakdowns[1].FrontBonus, ShouldEqual, 0)
			So(breakdowns[2].FrontBonus, ShouldEqual, 5)
		})

		Convey("Then the unset nine contributes zero and is flagged", func() {
			b := breakdowns[1]
			So(b.Front9Entered, ShouldBeFalse)
			So(b.Front9Points, ShouldEqual, 0)
			So(b.TotalPoints, ShouldEqual, b.Back9Points)
		})

		Convey("Then the raw stroke total is the incomplete sentinel", func() {
			So(breakdowns[1].TotalScore, ShouldEqual, golf.IncompleteScore)
		})

		Convey("Then it cannot win the overall bonus either", func() {
			So(breakdowns[1].OverallBonus, ShouldEqual, 0)
			So(breakdowns[2].OverallBonus, ShouldEqual, 10)
		})
	})

	Convey("Given a team with no rostered players", t, func() {
		snap := weekendSnapshot()
		snap.Teams = append(snap.Teams, model.Team{Number: 3})
		snap.Scores[3] = model.GolfScore{Front9: strokes(40), Back9: strokes(41)}
		breakdowns := golf.Breakdowns(snap)

		Convey("Then the orphan team is still scored", func() {
			b := breakdowns[3]
			So(b.TotalPoints, ShouldEqual, 6+5)
			So(b.TotalScore, ShouldEqual, 81)
		})
	})

	Convey("Given no scores at all", t, func() {
		snap := weekendSnapshot()
		snap.Scores = map[int]model.GolfScore{}
		breakdowns := golf.Breakdowns(snap)

		Convey("Then nobody receives a bonus and nothing crashes", func() {
			for _, b := range breakdowns {
				So(b.FrontBonus, ShouldEqual, 0)
				So(b.BackBonus, ShouldEqual, 0)
				So(b.OverallBonus, ShouldEqual, 0)
				So(b.TotalScore, ShouldEqual, golf.IncompleteScore)
			}
		})
	})
}
