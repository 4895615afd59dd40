package console

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/bjorlileika/internal/adapters/http/api"
	"github.com/okian/bjorlileika/internal/adapters/http/client"
	service "github.com/okian/bjorlileika/internal/app"
	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/internal/page"
	"github.com/okian/bjorlileika/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newServer(t *testing.T) (*httptest.Server, *service.Service) {
	t.Helper()
	svc := service.New(service.WithSeedDates("2024-07-13", "2025-07-12"))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return srv, svc
}

func TestSplitArgs(t *testing.T) {
	Convey("Given command lines", t, func() {
		cases := []struct {
			line string
			want []string
		}{
			{line: "set Ola Darts 3", want: []string{"set", "Ola", "Darts", "3"}},
			{line: `set "Ola Nordmann" "Tre i rad" 4`, want: []string{"set", "Ola Nordmann", "Tre i rad", "4"}},
			{line: "  show  ", want: []string{"show"}},
			{line: `set "" Darts 1`, want: []string{"set", "", "Darts", "1"}},
			{line: "", want: nil},
		}
		for _, c := range cases {
			Convey("Splitting "+strings.TrimSpace(c.line), func() {
				got, err := splitArgs(c.line)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, c.want)
			})
		}

		Convey("An open quote is an error", func() {
			_, err := splitArgs(`set "Ola Darts 3`)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLineIO(t *testing.T) {
	Convey("Given a line prompter", t, func() {
		var out bytes.Buffer
		lio := NewLineIO(strings.NewReader("Ola\n-\n"), &out)

		Convey("Then answers, cancel and end of input are told apart", func() {
			a, ok := lio.Prompt(page.PromptPlayerName)
			So(ok, ShouldBeTrue)
			So(a, ShouldEqual, "Ola")

			_, ok = lio.Prompt(page.PromptPlayerName)
			So(ok, ShouldBeFalse)

			_, ok = lio.Prompt(page.PromptPlayerName)
			So(ok, ShouldBeFalse)

			So(out.String(), ShouldContainSubstring, page.PromptPlayerName)
		})

		Convey("Then alerts are printed", func() {
			lio.Alert(page.AlertSendOK)
			So(out.String(), ShouldEqual, "! "+page.AlertSendOK+"\n")
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running server with two empty dates", t, func() {
		srv, svc := newServer(t)
		ctx := context.Background()

		Convey("When a session is scripted", func() {
			script := strings.Join([]string{
				"dates",
				"player", "Ola",
				"player", "Kari",
				"game", "Darts",
				"game", "Darts",
				"set Ola Darts 3",
				"set Kari Darts 12",
				"show",
				"send",
				"quit",
			}, "\n") + "\n"
			var out bytes.Buffer
			err := Run(ctx, &Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, strings.NewReader(script), &out)
			So(err, ShouldBeNil)

			Convey("Then the newest date was used and the sheet was stored", func() {
				data, err := svc.DateData(ctx, "2025-07-12")
				So(err, ShouldBeNil)
				So(data.Players, ShouldResemble, []string{"Ola", "Kari"})
				So(data.Games, ShouldHaveLength, 1)
				So(data.Games[0].Scores, ShouldResemble, map[string]float64{"Ola": 3, "Kari": 0})
			})

			Convey("Then the user saw the alerts", func() {
				text := out.String()
				So(text, ShouldContainSubstring, "* 2025-07-12")
				So(text, ShouldContainSubstring, page.AlertDuplicateGame)
				So(text, ShouldContainSubstring, "score out of range")
				So(text, ShouldContainSubstring, page.AlertSendOK)
			})
		})

		Convey("When a score is edited and sent straight away", func() {
			script := "player\nOla\ngame\nDarts\nset Ola Darts 5\nsend\nquit\n"
			var out bytes.Buffer
			So(Run(ctx, &Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, strings.NewReader(script), &out), ShouldBeNil)

			Convey("Then the open edit is part of the submission", func() {
				data, err := svc.DateData(ctx, "2025-07-12")
				So(err, ShouldBeNil)
				So(data.Games, ShouldHaveLength, 1)
				So(data.Games[0].Scores, ShouldResemble, map[string]float64{"Ola": 5})
				So(out.String(), ShouldContainSubstring, page.AlertSendOK)
			})
		})

		Convey("When an edit is open while another date is selected", func() {
			So(svc.SubmitGame(ctx, model.BjorliGame{
				Date:    "2024-07-13",
				Players: []string{"Ola"},
				Games:   []model.Game{{Name: "Darts", Scores: map[string]float64{"Ola": 2}}},
			}), ShouldBeNil)
			script := "player\nOla\ngame\nDarts\nset Ola Darts 9\nselect 2024-07-13\nsend\nquit\n"
			var out bytes.Buffer
			So(Run(ctx, &Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, strings.NewReader(script), &out), ShouldBeNil)

			Convey("Then the edit is dropped with the old rows", func() {
				data, err := svc.DateData(ctx, "2024-07-13")
				So(err, ShouldBeNil)
				So(data.Games[0].Scores, ShouldResemble, map[string]float64{"Ola": 2})
			})
		})

		Convey("When set names a cell that does not exist", func() {
			var out bytes.Buffer
			r := NewRunner(client.New(srv.URL), strings.NewReader(""), &out)
			r.Controller().Mount(ctx)
			r.Exec(ctx, "set Nils Darts 3")

			Convey("Then no edit is opened", func() {
				So(out.String(), ShouldContainSubstring, "unknown")
				So(r.table.Editing(), ShouldBeFalse)
			})
		})

		Convey("When the session is locked", func() {
			So(svc.SetLocked(ctx, "2024-07-13", true), ShouldBeNil)
			var out bytes.Buffer
			err := Run(ctx, &Config{BaseURL: srv.URL, Date: "2024-07-13"},
				strings.NewReader("player\nOla\nsend\n"), &out)

			Convey("Then sending fails and input end stops the loop", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, page.AlertSendFailed)
			})
		})
	})

	Convey("Given an unreachable server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		Convey("Then the sheet still runs", func() {
			var out bytes.Buffer
			err := Run(context.Background(), &Config{BaseURL: url}, strings.NewReader("send\nunknown\nquit\n"), &out)
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "could not load dates")
			So(out.String(), ShouldContainSubstring, page.AlertNotReady)
			So(out.String(), ShouldContainSubstring, `unknown command "unknown"`)
		})
	})
}
