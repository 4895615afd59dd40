package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sheet"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then its collectors should be registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.sessionsCreated.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_sheet_sessions_created_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "bjorli")
				So(manager.subsystem, ShouldEqual, "sheet")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording submissions", func() {
			before := testutil.ToFloat64(globalManager.submissions.WithLabelValues("accepted"))
			RecordSubmission("accepted")
			RecordSubmission("accepted")
			RecordSubmission("locked")

			Convey("Then the outcome counter should increase", func() {
				after := testutil.ToFloat64(globalManager.submissions.WithLabelValues("accepted"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When updating the session gauge", func() {
			UpdateSessionCount(3)

			Convey("Then the gauge should hold the value", func() {
				So(testutil.ToFloat64(globalManager.sessionsTotal), ShouldEqual, 3)
			})
		})

		Convey("When recording the remaining metrics", func() {
			So(func() {
				RecordSessionCreated()
				RecordSubmissionShape(4, 3)
				RecordStandingsRequest()
				RecordQRCodeRendered()
				RecordStoreLatency("get", 1.5)
				RecordStoreError("put")
				RecordHTTPRequest("dates", "GET", "200")
				RecordHTTPRequestDuration("dates", "GET", "200", 2)
				RecordErrorByComponent("store", "not_found")
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("games", "POST", "client_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			RecordHTTPRequest("healthz", "GET", "200")
			families, err := GetRegistry().Gather()

			Convey("Then only service metrics should be exposed", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "bjorli_sheet_"), ShouldBeTrue)
				}
			})
		})
	})
}
