package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tgoode/weekendcup/pkg/metrics"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := metrics.NewManager(metrics.WithRegistry(registry))

		Convey("Then all collectors register without panicking", func() {
			So(manager, ShouldNotBeNil)
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			// Histograms without observations still gather; counters appear
			// once incremented.
			So(families, ShouldNotBeNil)
		})

		Convey("Then a second manager on the same registry panics", func() {
			So(func() { metrics.NewManager(metrics.WithRegistry(registry)) }, ShouldPanic)
		})
	})

	Convey("Given the global helpers", t, func() {
		Convey("Then recording is safe to call repeatedly", func() {
			So(func() {
				metrics.RecordSnapshotRebuild(5 * time.Millisecond)
				metrics.RecordStoreError()
				metrics.RecordLeaderboardQuery()
				metrics.RecordChartQuery()
				metrics.RecordLoginFailure()
				metrics.RecordHTTPRequest("leaderboard", "GET", "200")
				metrics.RecordHTTPRequestDuration("leaderboard", "GET", time.Millisecond)
				metrics.UpdatePlayersTracked(8)
				metrics.UpdateTeamsTracked(4)
				metrics.UpdateEventsCompleted(2)
			}, ShouldNotPanic)
		})

		Convey("Then the global registry is exposed for promhttp", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
