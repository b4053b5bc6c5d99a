// Package types contains display-ready shapes returned by the API.
package types

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank        int            `json:"rank"`
	Slot        int            `json:"slot"`
	Name        string         `json:"name"`
	Golf        int            `json:"golf"`
	Trivia      int            `json:"trivia"`
	Predictions int            `json:"predictions"`
	Events      map[string]int `json:"events"`
	Total       int            `json:"total"`
}

// BoardEntry is one row of a per-event sub-leaderboard.
type BoardEntry struct {
	Rank   int    `json:"rank"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// TeamBreakdown mirrors a golf scoring breakdown for rendering. TotalScore
// is null until both nines have been entered.
type TeamBreakdown struct {
	TeamNumber    int      `json:"team_number"`
	Roster        []string `json:"roster"`
	Front9Points  int      `json:"front9_points"`
	Back9Points   int      `json:"back9_points"`
	Front9Entered bool     `json:"front9_entered"`
	Back9Entered  bool     `json:"back9_entered"`
	TotalPoints   int      `json:"total_points"`
	FrontBonus    int      `json:"front_bonus"`
	BackBonus     int      `json:"back_bonus"`
	OverallBonus  int      `json:"overall_bonus"`
	ShotgunCount  int      `json:"shotgun_count"`
	ShotgunPoints int      `json:"shotgun_points"`
	TotalScore    *int     `json:"total_score"`
	GrandTotal    int      `json:"grand_total"`
}

// Podium is the final top-3 display. Only produced once the competition is
// closed and at least three players are ranked.
type Podium struct {
	First  Entry `json:"first"`
	Second Entry `json:"second"`
	Third  Entry `json:"third"`
}

// ChartSeries is one player's cumulative line on the progression chart.
type ChartSeries struct {
	Name       string `json:"name"`
	Cumulative []int  `json:"cumulative"`
}

// Chart is the progression chart payload: one label per plotted event plus
// the implicit leading "Start" label, and one series per player.
type Chart struct {
	EventLabels []string      `json:"event_labels"`
	Series      []ChartSeries `json:"series"`
}
