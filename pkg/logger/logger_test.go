package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing text to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at info", func() {
			Get().Info(ctx, "teams balanced", String("k", "v"), Float64("difference", 0.4))

			Convey("Then message, fields and source are written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "teams balanced")
				So(out, ShouldContainSubstring, "k=v")
				So(out, ShouldContainSubstring, "difference=0.4")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging at debug with the default level", func() {
			Get().Debug(ctx, "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(ctx, "visible")

			Convey("Then debug messages are written", func() {
				So(buf.String(), ShouldContainSubstring, "visible")
			})
		})

		Convey("When using a named logger with bound fields", func() {
			Named("api").With(String("request_id", "r-1")).Warn(ctx, "slow", Int("ms", 12))

			Convey("Then the group and bound fields appear", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "request_id=r-1")
				So(out, ShouldContainSubstring, "api.ms=12")
			})
		})
	})

	Convey("Given a logger writing JSON", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithFormat("JSON")), ShouldBeNil)
		Get().Error(context.Background(), "boom", Bool("valid", false))

		Convey("Then each line is a JSON object", func() {
			var rec map[string]any
			So(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec), ShouldBeNil)
			So(rec["msg"], ShouldEqual, "boom")
			So(rec["level"], ShouldEqual, "ERROR")
			So(rec["valid"], ShouldEqual, false)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then known names are accepted", func() {
			for _, l := range []string{"debug", "INFO", "", "warn", "warning", " error "} {
				So(SetLevelString(l), ShouldBeNil)
			}
		})

		Convey("And unknown names are rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
