package logger_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tgoode/weekendcup/pkg/logger"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()

		Convey("Then all levels log without panicking", func() {
			l := logger.Get()
			So(func() {
				l.Debug(ctx, "debug message", logger.String("k", "v"))
				l.Info(ctx, "info message", logger.Int("n", 1))
				l.Warn(ctx, "warn message", logger.Bool("flag", true))
				l.Error(ctx, "error message", logger.Error(nil))
			}, ShouldNotPanic)
		})

		Convey("Then named loggers derive from the global", func() {
			named := logger.Named("store")
			So(named, ShouldNotBeNil)
			So(func() { named.Info(ctx, "from named") }, ShouldNotPanic)
		})

		Convey("Then level strings parse case-insensitively", func() {
			So(logger.SetLevelString("DEBUG"), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("Then Sync is a no-op", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}
