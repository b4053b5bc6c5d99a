package standings

import (
	"fmt"
	"sort"

	"github.com/tgoode/weekendcup/internal/domain/golf"
	"github.com/tgoode/weekendcup/internal/domain/model"
)

// Rank orders standings by total descending. Ties keep their input order;
// no secondary key is applied, so equal totals display in enumeration order.
func Rank(rows []Standing) []Standing {
	ranked := make([]Standing, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Vector.Total > ranked[j].Vector.Total
	})
	return ranked
}

// Podium is the final 1st/2nd/3rd triple.
type Podium struct {
	First  Standing
	Second Standing
	Third  Standing
}

// TopThree extracts the podium from an already-ranked list. With fewer than
// three entries the podium is suppressed entirely, never shown partially.
func TopThree(ranked []Standing) (Podium, bool) {
	if len(ranked) < 3 {
		return Podium{}, false
	}
	return Podium{First: ranked[0], Second: ranked[1], Third: ranked[2]}, true
}

// Row is one line of a per-event sub-leaderboard.
type Row struct {
	Label  string
	Points int
}

// RankRows applies the same stable descending rule to a scalar board.
func RankRows(rows []Row) []Row {
	ranked := make([]Row, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Points > ranked[j].Points })
	return ranked
}

// TeamBoard ranks golf teams by grand total.
func TeamBoard(snap model.Snapshot) []Row {
	breakdowns := golf.Breakdowns(snap)
	rows := make([]Row, 0, len(snap.Teams))
	for _, team := range snap.Teams {
		rows = append(rows, Row{
			Label:  fmt.Sprintf("Team %d", team.Number),
			Points: breakdowns[team.Number].GrandTotal,
		})
	}
	return RankRows(rows)
}

// EventBoard ranks directory players on a single point column. The key is
// one of the built-in event keys or a custom event id; an unknown key yields
// an all-zero board, matching the seeded columns.
func EventBoard(snap model.Snapshot, key string) []Row {
	points := PlayerPoints(snap)
	rows := make([]Row, 0, len(points))
	for _, s := range points {
		var pts int
		switch key {
		case model.EventGolf:
			pts = s.Vector.Golf
		case model.EventTrivia:
			pts = s.Vector.Trivia
		case model.EventPredictions:
			pts = s.Vector.Predictions
		default:
			pts = s.Vector.Events[key]
		}
		rows = append(rows, Row{Label: s.Name, Points: pts})
	}
	return RankRows(rows)
}
