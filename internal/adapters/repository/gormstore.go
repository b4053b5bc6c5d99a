package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tgoode/weekendcup/internal/domain/model"
	"github.com/tgoode/weekendcup/pkg/metrics"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// GormStore implements Store on sqlite via gorm.
type GormStore struct {
	db   *gorm.DB
	path string
}

// Option applies a configuration option to the GormStore.
type Option func(*GormStore)

// WithPath sets the sqlite database path.
func WithPath(path string) Option {
	return func(s *GormStore) {
		if path != "" {
			s.path = path
		}
	}
}

// NewGormStore opens the database, migrates the schema, and seeds the
// single settings row when missing.
func NewGormStore(ctx context.Context, opts ...Option) (*GormStore, error) {
	s := &GormStore{path: "weekendcup.db"}
	for _, opt := range opts {
		opt(s)
	}

	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.db = db

	if err := db.WithContext(ctx).AutoMigrate(
		&PlayerRecord{},
		&TeamRecord{},
		&GolfScoreRecord{},
		&SettingsRecord{},
		&AwardRecord{},
		&EventRecord{},
		&PointsRecord{},
		&CompletionRecord{},
		&CredentialRecord{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	var settings SettingsRecord
	err = db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.WithContext(ctx).Create(&SettingsRecord{
			Front9Par:      36,
			Back9Par:       36,
			BasePointsPer9: 10,
			BestFront:      5,
			BestBack:       5,
			OverallWinner:  10,
			Shotgun:        1,
		}).Error
	}
	if err != nil {
		return nil, fmt.Errorf("seed settings: %w", err)
	}

	return s, nil
}

// Close releases the underlying sqlite handle.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// Snapshot loads every table into one consistent view inside a read
// transaction and records the rebuild duration.
func (s *GormStore) Snapshot(ctx context.Context) (model.Snapshot, error) {
	start := time.Now()
	var snap model.Snapshot

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var players []PlayerRecord
		if err := tx.Order("slot").Find(&players).Error; err != nil {
			return fmt.Errorf("load players: %w", err)
		}
		for _, p := range players {
			snap.Players = append(snap.Players, model.Player{Slot: p.Slot, Name: p.Name})
		}

		var teams []TeamRecord
		if err := tx.Order("number").Find(&teams).Error; err != nil {
			return fmt.Errorf("load teams: %w", err)
		}
		for _, t := range teams {
			var roster []string
			if len(t.Roster) > 0 {
				if err := json.Unmarshal(t.Roster, &roster); err != nil {
					return fmt.Errorf("decode roster for team %d: %w", t.Number, err)
				}
			}
			snap.Teams = append(snap.Teams, model.Team{Number: t.Number, Roster: roster})
		}

		var scores []GolfScoreRecord
		if err := tx.Find(&scores).Error; err != nil {
			return fmt.Errorf("load scores: %w", err)
		}
		snap.Scores = make(map[int]model.GolfScore, len(scores))
		snap.Shotguns = make(map[int]int, len(scores))
		for _, sc := range scores {
			snap.Scores[sc.TeamNumber] = model.GolfScore{Front9: sc.Front9, Back9: sc.Back9}
			snap.Shotguns[sc.TeamNumber] = sc.Shotguns
		}

		var settings SettingsRecord
		if err := tx.First(&settings).Error; err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		snap.Par = model.ParSettings{
			Front9Par:      settings.Front9Par,
			Back9Par:       settings.Back9Par,
			BasePointsPer9: settings.BasePointsPer9,
		}
		snap.Bonus = model.BonusSettings{
			BestFront:     settings.BestFront,
			BestBack:      settings.BestBack,
			OverallWinner: settings.OverallWinner,
			Shotgun:       settings.Shotgun,
		}
		snap.Closed = settings.Closed

		var awards []AwardRecord
		if err := tx.Find(&awards).Error; err != nil {
			return fmt.Errorf("load awards: %w", err)
		}
		snap.Awards = make(map[string]model.BonusAward, len(awards))
		for _, a := range awards {
			snap.Awards[a.Slot] = model.BonusAward{Player: a.Player, Points: a.Points}
		}

		var events []EventRecord
		if err := tx.Order("id").Find(&events).Error; err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		for _, ev := range events {
			decoded, err := decodeEvent(ev)
			if err != nil {
				return err
			}
			snap.Events = append(snap.Events, decoded)
		}

		var points []PointsRecord
		if err := tx.Find(&points).Error; err != nil {
			return fmt.Errorf("load points: %w", err)
		}
		snap.Trivia = make(map[string]int)
		snap.Predictions = make(map[string]int)
		for _, p := range points {
			switch p.Category {
			case model.EventTrivia:
				snap.Trivia[p.Player] = p.Points
			case model.EventPredictions:
				snap.Predictions[p.Player] = p.Points
			}
		}

		var completions []CompletionRecord
		if err := tx.Find(&completions).Error; err != nil {
			return fmt.Errorf("load completions: %w", err)
		}
		snap.Completed = make(map[string]bool, len(completions))
		for _, c := range completions {
			snap.Completed[c.EventKey] = c.Done
		}

		return nil
	})
	if err != nil {
		metrics.RecordStoreError()
		return model.Snapshot{}, err
	}

	metrics.RecordSnapshotRebuild(time.Since(start))
	return snap, nil
}

func decodeEvent(rec EventRecord) (model.CustomEvent, error) {
	ev := model.CustomEvent{
		ID:    rec.EventID,
		Name:  rec.Name,
		Order: rec.SortOrder,
		Mode:  model.ScoringMode(rec.Mode),
	}
	if len(rec.Rounds) > 0 {
		if err := json.Unmarshal(rec.Rounds, &ev.Rounds); err != nil {
			return ev, fmt.Errorf("decode rounds for event %s: %w", rec.EventID, err)
		}
	}
	if len(rec.Points) > 0 {
		if err := json.Unmarshal(rec.Points, &ev.Points); err != nil {
			return ev, fmt.Errorf("decode points for event %s: %w", rec.EventID, err)
		}
	}
	return ev, nil
}

func encodeEvent(ev model.CustomEvent) (EventRecord, error) {
	rounds, err := json.Marshal(ev.Rounds)
	if err != nil {
		return EventRecord{}, fmt.Errorf("encode rounds: %w", err)
	}
	points, err := json.Marshal(ev.Points)
	if err != nil {
		return EventRecord{}, fmt.Errorf("encode points: %w", err)
	}
	return EventRecord{
		EventID:   ev.ID,
		Name:      ev.Name,
		SortOrder: ev.Order,
		Mode:      string(ev.Mode),
		Rounds:    rounds,
		Points:    points,
	}, nil
}

func (s *GormStore) UpsertPlayer(ctx context.Context, p model.Player) error {
	rec := PlayerRecord{Slot: p.Slot, Name: p.Name}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert player %d: %w", p.Slot, err)
	}
	return nil
}

func (s *GormStore) UpsertTeam(ctx context.Context, t model.Team) error {
	roster, err := json.Marshal(t.Roster)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	rec := TeamRecord{Number: t.Number, Roster: roster}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		DoUpdates: clause.AssignmentColumns([]string{"roster", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert team %d: %w", t.Number, err)
	}
	return nil
}

func (s *GormStore) RecordGolfScore(ctx context.Context, teamNumber int, score model.GolfScore, shotguns int) error {
	rec := GolfScoreRecord{
		TeamNumber: teamNumber,
		Front9:     score.Front9,
		Back9:      score.Back9,
		Shotguns:   shotguns,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"front9", "back9", "shotguns", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("record score for team %d: %w", teamNumber, err)
	}
	return nil
}

func (s *GormStore) UpdatePar(ctx context.Context, par model.ParSettings) error {
	err := s.db.WithContext(ctx).Model(&SettingsRecord{}).Where("1 = 1").Updates(map[string]any{
		"front9_par":       par.Front9Par,
		"back9_par":        par.Back9Par,
		"base_points_per9": par.BasePointsPer9,
	}).Error
	if err != nil {
		return fmt.Errorf("update par settings: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateBonus(ctx context.Context, bonus model.BonusSettings) error {
	err := s.db.WithContext(ctx).Model(&SettingsRecord{}).Where("1 = 1").Updates(map[string]any{
		"best_front":     bonus.BestFront,
		"best_back":      bonus.BestBack,
		"overall_winner": bonus.OverallWinner,
		"shotgun":        bonus.Shotgun,
	}).Error
	if err != nil {
		return fmt.Errorf("update bonus settings: %w", err)
	}
	return nil
}

func (s *GormStore) SetAward(ctx context.Context, slot string, award model.BonusAward) error {
	rec := AwardRecord{Slot: slot, Player: award.Player, Points: award.Points}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"player", "points", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("set award %s: %w", slot, err)
	}
	return nil
}

func (s *GormStore) CreateEvent(ctx context.Context, ev model.CustomEvent) (model.CustomEvent, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	rec, err := encodeEvent(ev)
	if err != nil {
		return ev, err
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return ev, fmt.Errorf("create event: %w", err)
	}
	return ev, nil
}

func (s *GormStore) UpdateEvent(ctx context.Context, ev model.CustomEvent) error {
	rec, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&EventRecord{}).Where("event_id = ?", ev.ID).Updates(map[string]any{
		"name":       rec.Name,
		"sort_order": rec.SortOrder,
		"mode":       rec.Mode,
		"rounds":     rec.Rounds,
		"points":     rec.Points,
	})
	if res.Error != nil {
		return fmt.Errorf("update event %s: %w", ev.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteEvent(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("event_id = ?", id).Delete(&EventRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete event %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) SetPoints(ctx context.Context, category string, points map[string]int) error {
	if category != model.EventTrivia && category != model.EventPredictions {
		return ErrUnknownCategory
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("category = ?", category).Delete(&PointsRecord{}).Error; err != nil {
			return err
		}
		for player, pts := range points {
			rec := PointsRecord{Category: category, Player: player, Points: pts}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %s points: %w", category, err)
	}
	return nil
}

func (s *GormStore) SetCompleted(ctx context.Context, eventKey string, done bool) error {
	rec := CompletionRecord{EventKey: eventKey, Done: done}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"done", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("set completed %s: %w", eventKey, err)
	}
	return nil
}

func (s *GormStore) SetClosed(ctx context.Context, closed bool) error {
	err := s.db.WithContext(ctx).Model(&SettingsRecord{}).Where("1 = 1").Update("closed", closed).Error
	if err != nil {
		return fmt.Errorf("set closed: %w", err)
	}
	return nil
}

func (s *GormStore) PasswordHash(ctx context.Context, username string) (string, error) {
	var rec CredentialRecord
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load credentials: %w", err)
	}
	return rec.PasswordHash, nil
}

func (s *GormStore) SetPassword(ctx context.Context, username, hash string) error {
	rec := CredentialRecord{Username: username, PasswordHash: hash}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}
