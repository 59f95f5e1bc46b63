package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized on stderr", func() {
			So(Init(), ShouldBeNil)

			Convey("Then it is available", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with a nil writer", func() {
			Convey("Then it refuses", func() {
				So(InitWithWriter(nil), ShouldNotBeNil)
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
			Get().Info(ctx, "record processed",
				String("code", "RUN"),
				Int("index", 1),
				Float64("calories", 699.75),
				Bool("ok", true),
				Error(errors.New("boom")),
			)

			Convey("Then the fields and the caller are rendered", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "record processed")
				So(out, ShouldContainSubstring, "code=RUN")
				So(out, ShouldContainSubstring, "index=1")
				So(out, ShouldContainSubstring, "calories=699.75")
				So(out, ShouldContainSubstring, "ok=true")
				So(out, ShouldContainSubstring, "error=boom")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When using a named logger", func() {
			Named("runner").Warn(ctx, "skipped", String("code", "BIKE"))

			Convey("Then fields are grouped under the name", func() {
				So(buf.String(), ShouldContainSubstring, "runner.code=BIKE")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("ERROR"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Error(ctx, "shown")

			Convey("Then lower levels are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString(" debug "), ShouldBeNil)
			Get().Debug(ctx, "details")

			Convey("Then debug records are written", func() {
				So(buf.String(), ShouldContainSubstring, "details")
			})
		})

		Convey("When the level name is unknown", func() {
			Convey("Then it is rejected", func() {
				So(SetLevelString("verbose"), ShouldNotBeNil)
				So(SetLevelString("warning"), ShouldBeNil)
				So(SetLevelString(""), ShouldBeNil)
			})
		})
	})
}
