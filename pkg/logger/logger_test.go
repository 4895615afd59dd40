package logger

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When it is initialized", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get should return a logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When it is initialized with a nil writer", func() {
			err := InitWithWriter(nil)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "sheet loaded", String("date", "2024-07-13"), Int("players", 4))

			Convey("Then the fields and the caller should be written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "sheet loaded")
				So(out, ShouldContainSubstring, "date=2024-07-13")
				So(out, ShouldContainSubstring, "players=4")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the context carries a request id", func() {
			Get().Warn(WithRequestID(ctx, "req-42"), "rejected")

			Convey("Then the request id should be attached", func() {
				So(buf.String(), ShouldContainSubstring, "request_id=req-42")
			})
		})

		Convey("When logging below the configured level", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Debug(ctx, "hidden")
			Get().Info(ctx, "hidden too")
			So(SetLevelString("info"), ShouldBeNil)

			Convey("Then nothing should be written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When using a named logger", func() {
			Named("store").Info(ctx, "opened")

			Convey("Then the component should be attached", func() {
				So(buf.String(), ShouldContainSubstring, "component=store")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("loud"), ShouldNotBeNil)
		So(SetLevelString("info"), ShouldBeNil)
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given a context without a request id", t, func() {
		So(RequestID(context.Background()), ShouldEqual, "")
		So(RequestID(WithRequestID(context.Background(), "abc")), ShouldEqual, "abc")
	})
}
