package repository

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Database records. Rosters and event round data are stored as JSON columns
// because they are written and read whole, never queried by member.

// PlayerRecord is one directory slot.
type PlayerRecord struct {
	gorm.Model
	Slot int `gorm:"uniqueIndex"`
	Name string
}

// TeamRecord maps a golf team number to its JSON-encoded roster.
type TeamRecord struct {
	gorm.Model
	Number int            `gorm:"uniqueIndex"`
	Roster datatypes.JSON `gorm:"type:json"`
}

// GolfScoreRecord holds a team's raw strokes and shotgun count. Nil nines
// have not been entered.
type GolfScoreRecord struct {
	gorm.Model
	TeamNumber int `gorm:"uniqueIndex"`
	Front9     *int
	Back9      *int
	Shotguns   int
}

// SettingsRecord is the single global row of par/bonus settings plus the
// competition-closed flag.
type SettingsRecord struct {
	gorm.Model
	Front9Par      int
	Back9Par       int
	BasePointsPer9 int
	BestFront      int
	BestBack       int
	OverallWinner  int
	Shotgun        int
	Closed         bool
}

// AwardRecord is one individual bonus slot (long drive, closest to the pin).
type AwardRecord struct {
	gorm.Model
	Slot   string `gorm:"uniqueIndex"`
	Player string
	Points int
}

// EventRecord is one custom event definition with its results. Team-scored
// events fill Rounds; individually-scored events fill Points.
type EventRecord struct {
	gorm.Model
	EventID   string `gorm:"uniqueIndex"`
	Name      string
	SortOrder int
	Mode      string
	Rounds    datatypes.JSON `gorm:"type:json"`
	Points    datatypes.JSON `gorm:"type:json"`
}

// PointsRecord is one player's tally in an opaque category (trivia,
// predictions).
type PointsRecord struct {
	gorm.Model
	Category string `gorm:"uniqueIndex:idx_category_player"`
	Player   string `gorm:"uniqueIndex:idx_category_player"`
	Points   int
}

// CompletionRecord flags one event key as final enough for the chart.
type CompletionRecord struct {
	gorm.Model
	EventKey string `gorm:"uniqueIndex"`
	Done     bool
}

// CredentialRecord holds an admin login.
type CredentialRecord struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex"`
	PasswordHash string
}
