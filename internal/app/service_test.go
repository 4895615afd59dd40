package service_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/okian/bjorlileika/internal/adapters/repository"
	service "github.com/okian/bjorlileika/internal/app"
	"github.com/okian/bjorlileika/internal/config"
	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func dartsSession(date string) model.BjorliGame {
	return model.BjorliGame{
		Date:    date,
		Players: []string{"Ola", "Kari"},
		Games: []model.Game{
			{Name: "Darts", Scores: map[string]float64{"Ola": 3, "Kari": 5}},
			{Name: "Kubb", Scores: map[string]float64{"Ola": 2}},
		},
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should report the memory store and not be started", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldBeFalse)
			So(stats["store"], ShouldEqual, config.StoreMemory)
		})

		Convey("Then operations fail until Start", func() {
			_, err := svc.Dates(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with seed dates", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSeedDates("2024-07-13", "2025-07-12"))
		defer svc.Stop()

		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then the seed dates are listed newest first", func() {
			dates, err := svc.Dates(ctx)
			So(err, ShouldBeNil)
			So(dates, ShouldResemble, []string{"2025-07-12", "2024-07-13"})
		})

		Convey("Then stats show the sessions", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["sessions"], ShouldEqual, 2)
		})

		Convey("Then starting twice is a no-op", func() {
			So(svc.Start(ctx), ShouldBeNil)
		})
	})

	Convey("Given a seed date in the wrong format", t, func() {
		svc := service.New(service.WithSeedDates("13.07.2024"))

		Convey("Then Start fails", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, model.ErrInvalidSession), ShouldBeTrue)
		})
	})

	Convey("Given an unknown store driver", t, func() {
		svc := service.New(service.WithStoreDriver("mongo", ""))

		Convey("Then Start fails with ErrDriver", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, repository.ErrDriver), ShouldBeTrue)
		})
	})
}

func TestService_Sessions(t *testing.T) {
	Convey("Given a started service over an injected store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		svc := service.New(service.WithStore(store))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When creating a date", func() {
			g, err := svc.CreateDate(ctx, " 2024-07-13 ")
			So(err, ShouldBeNil)
			So(g.Date, ShouldEqual, "2024-07-13")

			Convey("Then its data is empty", func() {
				data, err := svc.DateData(ctx, "2024-07-13")
				So(err, ShouldBeNil)
				So(data.Players, ShouldBeEmpty)
				So(data.Games, ShouldBeEmpty)
			})

			Convey("Then creating it again fails with ErrExists", func() {
				_, err := svc.CreateDate(ctx, "2024-07-13")
				So(errors.Is(err, repository.ErrExists), ShouldBeTrue)
			})
		})

		Convey("When creating a malformed date", func() {
			_, err := svc.CreateDate(ctx, "")
			So(errors.Is(err, model.ErrInvalidSession), ShouldBeTrue)
		})

		Convey("When reading an unknown date", func() {
			_, err := svc.DateData(ctx, "1999-01-01")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When submitting a valid session", func() {
			So(svc.SubmitGame(ctx, dartsSession("2024-07-13")), ShouldBeNil)

			Convey("Then the data round-trips", func() {
				data, err := svc.DateData(ctx, "2024-07-13")
				So(err, ShouldBeNil)
				So(data.Players, ShouldResemble, []string{"Ola", "Kari"})
				So(data.Games, ShouldHaveLength, 2)
				So(data.Games[0].Scores["Kari"], ShouldEqual, 5)
			})

			Convey("Then standings rank the lowest total first", func() {
				st, err := svc.Standings(ctx, "2024-07-13")
				So(err, ShouldBeNil)
				So(st, ShouldHaveLength, 2)
				So(st[0], ShouldResemble, model.Standing{Rank: 1, PlayerName: "Kari", Total: 5})
				So(st[1], ShouldResemble, model.Standing{Rank: 2, PlayerName: "Ola", Total: 6})
			})

			Convey("Then a locked session rejects further submissions", func() {
				So(svc.SetLocked(ctx, "2024-07-13", true), ShouldBeNil)
				err := svc.SubmitGame(ctx, dartsSession("2024-07-13"))
				So(errors.Is(err, repository.ErrLocked), ShouldBeTrue)

				So(svc.SetLocked(ctx, "2024-07-13", false), ShouldBeNil)
				So(svc.SubmitGame(ctx, dartsSession("2024-07-13")), ShouldBeNil)
			})
		})

		Convey("When submitting a session with a reserved game name", func() {
			bad := dartsSession("2024-07-13")
			bad.Games = append(bad.Games, model.Game{Name: model.FieldTotal})
			err := svc.SubmitGame(ctx, bad)

			Convey("Then it is rejected and nothing is stored", func() {
				So(errors.Is(err, model.ErrInvalidSession), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When locking an unknown date", func() {
			err := svc.SetLocked(ctx, "1999-01-01", true)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When stopping it", func() {
			svc.Stop()

			Convey("Then it is no longer started", func() {
				So(svc.GetStats()["started"], ShouldBeFalse)
				_, err := svc.Standings(context.Background(), "2024-07-13")
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})

			Convey("Then stopping again is safe", func() {
				svc.Stop()
			})
		})
	})
}
