// Package golf converts raw team strokes into point breakdowns.
//
// Scoring is Stableford-like: each nine is worth a base number of points,
// adjusted one point per stroke relative to par. Bonuses for the best front
// nine, best back nine, and best overall round are awarded globally across
// all teams, so the whole field is scored in one pass.
package golf

import "github.com/tgoode/weekendcup/internal/domain/model"

// IncompleteScore marks a team's raw stroke total when either nine has not
// been entered. Display-only sentinel; it never feeds point math.
const IncompleteScore = -1

// Breakdown is one team's display-ready golf scoring line.
type Breakdown struct {
	TeamNumber    int
	Front9Points  int
	Back9Points   int
	Front9Entered bool
	Back9Entered  bool
	TotalPoints   int
	FrontBonus    int
	BackBonus     int
	OverallBonus  int
	ShotgunCount  int
	ShotgunPoints int
	TotalScore    int
	GrandTotal    int
}

// Complete reports whether both nines have been entered.
func (b Breakdown) Complete() bool { return b.Front9Entered && b.Back9Entered }

// NinePoints converts raw strokes on one nine into points: the base value
// plus one point per stroke under par, minus one per stroke over. Negative
// results are legal.
func NinePoints(par, base, strokes int) int {
	return base + (par - strokes)
}

// Breakdowns scores every team in the snapshot. Bonus awarding needs the
// whole field at once: for each of front strokes, back strokes, and combined
// strokes, every team tied for the strictly lowest recorded value receives
// the configured bonus. Teams with no recorded value for a metric are
// excluded from that metric's minimum search.
func Breakdowns(snap model.Snapshot) map[int]Breakdown {
	out := make(map[int]Breakdown, len(snap.Teams))

	front := make(map[int]int)
	back := make(map[int]int)
	overall := make(map[int]int)

	for _, team := range snap.Teams {
		score := snap.Scores[team.Number]
		b := Breakdown{TeamNumber: team.Number, TotalScore: IncompleteScore}

		if score.Front9 != nil {
			b.Front9Entered = true
			b.Front9Points = NinePoints(snap.Par.Front9Par, snap.Par.BasePointsPer9, *score.Front9)
			front[team.Number] = *score.Front9
		}
		if score.Back9 != nil {
			b.Back9Entered = true
			b.Back9Points = NinePoints(snap.Par.Back9Par, snap.Par.BasePointsPer9, *score.Back9)
			back[team.Number] = *score.Back9
		}
		// Unentered nines contribute zero here; the Entered flags let the
		// rendering layer show "not yet entered" instead of a real zero.
		b.TotalPoints = b.Front9Points + b.Back9Points

		if b.Complete() {
			b.TotalScore = *score.Front9 + *score.Back9
			overall[team.Number] = b.TotalScore
		}

		b.ShotgunCount = snap.Shotguns[team.Number]
		b.ShotgunPoints = b.ShotgunCount * snap.Bonus.Shotgun

		out[team.Number] = b
	}

	for _, n := range lowestTeams(front) {
		b := out[n]
		b.FrontBonus = snap.Bonus.BestFront
		out[n] = b
	}
	for _, n := range lowestTeams(back) {
		b := out[n]
		b.BackBonus = snap.Bonus.BestBack
		out[n] = b
	}
	for _, n := range lowestTeams(overall) {
		b := out[n]
		b.OverallBonus = snap.Bonus.OverallWinner
		out[n] = b
	}

	for n, b := range out {
		b.GrandTotal = b.TotalPoints + b.FrontBonus + b.BackBonus + b.OverallBonus + b.ShotgunPoints
		out[n] = b
	}

	return out
}

// lowestTeams returns every team number tied for the minimum recorded value.
func lowestTeams(strokes map[int]int) []int {
	var winners []int
	best := 0
	for n, s := range strokes {
		switch {
		case len(winners) == 0 || s < best:
			winners = winners[:0]
			winners = append(winners, n)
			best = s
		case s == best:
			winners = append(winners, n)
		}
	}
	return winners
}
