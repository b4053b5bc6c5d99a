package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/bcrypt"

	"github.com/tgoode/weekendcup/internal/adapters/repository"
	service "github.com/tgoode/weekendcup/internal/app"
	"github.com/tgoode/weekendcup/internal/domain/model"
	"github.com/tgoode/weekendcup/pkg/logger"
)

func init() {
	_ = logger.Init()
}

// memStore is an in-memory Store for exercising the service without sqlite.
type memStore struct {
	snap      model.Snapshot
	passwords map[string]string
}

func newMemStore(snap model.Snapshot) *memStore {
	return &memStore{snap: snap, passwords: map[string]string{}}
}

func (m *memStore) Snapshot(context.Context) (model.Snapshot, error) { return m.snap, nil }

func (m *memStore) UpsertPlayer(_ context.Context, p model.Player) error {
	for i, existing := range m.snap.Players {
		if existing.Slot == p.Slot {
			m.snap.Players[i] = p
			return nil
		}
	}
	m.snap.Players = append(m.snap.Players, p)
	return nil
}

func (m *memStore) UpsertTeam(_ context.Context, t model.Team) error {
	m.snap.Teams = append(m.snap.Teams, t)
	return nil
}

func (m *memStore) RecordGolfScore(_ context.Context, teamNumber int, score model.GolfScore, shotguns int) error {
	if m.snap.Scores == nil {
		m.snap.Scores = map[int]model.GolfScore{}
	}
	if m.snap.Shotguns == nil {
		m.snap.Shotguns = map[int]int{}
	}
	m.snap.Scores[teamNumber] = score
	m.snap.Shotguns[teamNumber] = shotguns
	return nil
}

func (m *memStore) UpdatePar(_ context.Context, par model.ParSettings) error {
	m.snap.Par = par
	return nil
}

func (m *memStore) UpdateBonus(_ context.Context, bonus model.BonusSettings) error {
	m.snap.Bonus = bonus
	return nil
}

func (m *memStore) SetAward(_ context.Context, slot string, award model.BonusAward) error {
	if m.snap.Awards == nil {
		m.snap.Awards = map[string]model.BonusAward{}
	}
	m.snap.Awards[slot] = award
	return nil
}

func (m *memStore) CreateEvent(_ context.Context, ev model.CustomEvent) (model.CustomEvent, error) {
	if ev.ID == "" {
		ev.ID = fmt.Sprintf("evt-%d", len(m.snap.Events)+1)
	}
	m.snap.Events = append(m.snap.Events, ev)
	return ev, nil
}

func (m *memStore) UpdateEvent(_ context.Context, ev model.CustomEvent) error {
	for i, existing := range m.snap.Events {
		if existing.ID == ev.ID {
			m.snap.Events[i] = ev
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) DeleteEvent(_ context.Context, id string) error {
	for i, existing := range m.snap.Events {
		if existing.ID == id {
			m.snap.Events = append(m.snap.Events[:i], m.snap.Events[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) SetPoints(_ context.Context, category string, points map[string]int) error {
	switch category {
	case model.EventTrivia:
		m.snap.Trivia = points
	case model.EventPredictions:
		m.snap.Predictions = points
	default:
		return repository.ErrUnknownCategory
	}
	return nil
}

func (m *memStore) SetCompleted(_ context.Context, eventKey string, done bool) error {
	if m.snap.Completed == nil {
		m.snap.Completed = map[string]bool{}
	}
	m.snap.Completed[eventKey] = done
	return nil
}

func (m *memStore) SetClosed(_ context.Context, closed bool) error {
	m.snap.Closed = closed
	return nil
}

func (m *memStore) PasswordHash(_ context.Context, username string) (string, error) {
	hash, ok := m.passwords[username]
	if !ok {
		return "", repository.ErrNotFound
	}
	return hash, nil
}

func (m *memStore) SetPassword(_ context.Context, username, hash string) error {
	m.passwords[username] = hash
	return nil
}

func (m *memStore) Close() error { return nil }

func weekendSnapshot() model.Snapshot {
	f1, b1 := 34, 38
	f2, b2 := 36, 35
	return model.Snapshot{
		Players: []model.Player{
			{Slot: 1, Name: "Walt"},
			{Slot: 2, Name: "Jesse"},
			{Slot: 3, Name: "Hank"},
			{Slot: 4, Name: "Mike"},
		},
		Teams: []model.Team{
			{Number: 1, Roster: []string{"Walt", "Jesse"}},
			{Number: 2, Roster: []string{"Hank", "Mike"}},
		},
		Scores: map[int]model.GolfScore{
			1: {Front9: &f1, Back9: &b1},
			2: {Front9: &f2, Back9: &b2},
		},
		Par:      model.ParSettings{Front9Par: 36, Back9Par: 36, BasePointsPer9: 10},
		Bonus:    model.BonusSettings{BestFront: 5, BestBack: 5, OverallWinner: 10, Shotgun: 1},
		Shotguns: map[int]int{1: 2},
		Trivia:   map[string]int{"Jesse": 9, "Walt": 3},
		Events: []model.CustomEvent{
			{ID: "darts", Name: "Darts", Order: 1, Mode: model.ScoreByPlayer,
				Points: map[string]int{"Hank": 6, "Mike": 2}},
		},
		Completed: map[string]bool{model.EventGolf: true},
	}
}

func TestServiceReads(t *testing.T) {
	convey.Convey("Given a service over a weekend snapshot", t, func() {
		ctx := context.Background()
		store := newMemStore(weekendSnapshot())
		svc := service.New(service.WithStore(store))

		convey.Convey("When computing the leaderboard", func() {
			entries, err := svc.Leaderboard(ctx)

			convey.Convey("Then rows rank by total with ranks assigned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 4)
				// Hank: golf 36 + darts 6 = 42 leads.
				convey.So(entries[0].Name, convey.ShouldEqual, "Hank")
				convey.So(entries[0].Rank, convey.ShouldEqual, 1)
				convey.So(entries[0].Total, convey.ShouldEqual, 42)
				// Mike: 36 + 2 = 38. Jesse: 27 + 9 = 36. Walt: 27 + 3 = 30.
				convey.So(entries[1].Name, convey.ShouldEqual, "Mike")
				convey.So(entries[2].Name, convey.ShouldEqual, "Jesse")
				convey.So(entries[3].Name, convey.ShouldEqual, "Walt")
				convey.So(entries[3].Rank, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When asking for an event board", func() {
			convey.Convey("Then the golf key ranks teams", func() {
				board, err := svc.EventBoard(ctx, model.EventGolf)
				convey.So(err, convey.ShouldBeNil)
				convey.So(board, convey.ShouldHaveLength, 2)
				convey.So(board[0].Label, convey.ShouldEqual, "Team 2")
				convey.So(board[0].Points, convey.ShouldEqual, 36)
			})

			convey.Convey("Then a custom event id ranks players", func() {
				board, err := svc.EventBoard(ctx, "darts")
				convey.So(err, convey.ShouldBeNil)
				convey.So(board[0].Label, convey.ShouldEqual, "Hank")
			})

			convey.Convey("Then an unknown key is rejected", func() {
				_, err := svc.EventBoard(ctx, "croquet")
				convey.So(err, convey.ShouldEqual, service.ErrUnknownEvent)
			})
		})

		convey.Convey("When computing golf breakdowns", func() {
			breakdowns, err := svc.Breakdowns(ctx)

			convey.Convey("Then each team gets an ordered, complete line", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(breakdowns, convey.ShouldHaveLength, 2)
				convey.So(breakdowns[0].TeamNumber, convey.ShouldEqual, 1)
				convey.So(breakdowns[0].GrandTotal, convey.ShouldEqual, 27)
				convey.So(breakdowns[0].TotalScore, convey.ShouldNotBeNil)
				convey.So(*breakdowns[0].TotalScore, convey.ShouldEqual, 72)
				convey.So(breakdowns[1].GrandTotal, convey.ShouldEqual, 36)
			})
		})

		convey.Convey("When asking for the podium", func() {
			convey.Convey("Then it is unavailable while the competition runs", func() {
				podium, err := svc.Podium(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(podium, convey.ShouldBeNil)
			})

			convey.Convey("Then closing the competition reveals the top three", func() {
				convey.So(svc.SetClosed(ctx, true), convey.ShouldBeNil)
				podium, err := svc.Podium(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(podium, convey.ShouldNotBeNil)
				convey.So(podium.First.Name, convey.ShouldEqual, "Hank")
				convey.So(podium.Second.Name, convey.ShouldEqual, "Mike")
				convey.So(podium.Third.Name, convey.ShouldEqual, "Jesse")
			})
		})

		convey.Convey("When computing the progression chart", func() {
			chart, err := svc.Progression(ctx)

			convey.Convey("Then only completed events are plotted after Start", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(chart.EventLabels, convey.ShouldResemble, []string{"Start", "Golf"})
				convey.So(chart.Series, convey.ShouldHaveLength, 4)
				convey.So(chart.Series[0].Cumulative[0], convey.ShouldEqual, 0)
			})
		})
	})
}

func TestServiceWrites(t *testing.T) {
	convey.Convey("Given a service over a weekend snapshot", t, func() {
		ctx := context.Background()
		store := newMemStore(weekendSnapshot())
		svc := service.New(service.WithStore(store))

		convey.Convey("When marking a known event completed", func() {
			err := svc.SetCompleted(ctx, "darts", true)

			convey.Convey("Then the flag is stored", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store.snap.Completed["darts"], convey.ShouldBeTrue)
			})
		})

		convey.Convey("When marking an unknown event completed", func() {
			err := svc.SetCompleted(ctx, "croquet", true)

			convey.Convey("Then the write is rejected", func() {
				convey.So(err, convey.ShouldEqual, service.ErrUnknownEvent)
				convey.So(store.snap.Completed["croquet"], convey.ShouldBeFalse)
			})
		})

		convey.Convey("When assigning an individual golf award", func() {
			convey.Convey("Then known slots store and feed the golf column", func() {
				err := svc.SaveAward(ctx, model.AwardLongDrive, model.BonusAward{Player: "Walt", Points: 5})
				convey.So(err, convey.ShouldBeNil)

				entries, err := svc.Leaderboard(ctx)
				convey.So(err, convey.ShouldBeNil)
				for _, e := range entries {
					if e.Name == "Walt" {
						convey.So(e.Golf, convey.ShouldEqual, 32)
					}
				}
			})

			convey.Convey("Then unknown slots are rejected", func() {
				err := svc.SaveAward(ctx, "bestDressed", model.BonusAward{Player: "Walt", Points: 5})
				convey.So(err, convey.ShouldEqual, service.ErrUnknownAward)
			})
		})
	})
}

func TestServiceAuth(t *testing.T) {
	convey.Convey("Given a service with credential storage", t, func() {
		ctx := context.Background()
		store := newMemStore(model.Snapshot{})
		svc := service.New(service.WithStore(store))

		convey.Convey("When no credential is stored yet", func() {
			convey.Convey("Then EnsureAdmin seeds from the bootstrap password", func() {
				convey.So(svc.EnsureAdmin(ctx, "commissioner", "letmein"), convey.ShouldBeNil)
				convey.So(svc.Authenticate(ctx, "commissioner", "letmein"), convey.ShouldBeNil)
			})

			convey.Convey("Then EnsureAdmin without a bootstrap password fails", func() {
				err := svc.EnsureAdmin(ctx, "commissioner", "")
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a credential is already stored", func() {
			hash, err := bcrypt.GenerateFromPassword([]byte("original"), bcrypt.MinCost)
			convey.So(err, convey.ShouldBeNil)
			convey.So(store.SetPassword(ctx, "commissioner", string(hash)), convey.ShouldBeNil)

			convey.Convey("Then EnsureAdmin leaves it alone", func() {
				convey.So(svc.EnsureAdmin(ctx, "commissioner", "different"), convey.ShouldBeNil)
				convey.So(svc.Authenticate(ctx, "commissioner", "original"), convey.ShouldBeNil)
				convey.So(svc.Authenticate(ctx, "commissioner", "different"), convey.ShouldEqual, service.ErrUnauthorized)
			})

			convey.Convey("Then unknown users are rejected the same way", func() {
				convey.So(svc.Authenticate(ctx, "ghost", "original"), convey.ShouldEqual, service.ErrUnauthorized)
			})
		})
	})
}
