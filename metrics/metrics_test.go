package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should own a fresh registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry(), ShouldNotEqual, prometheus.DefaultRegisterer)
			})
		})

		Convey("When creating two managers on separate registries", func() {
			So(func() {
				NewManager(WithRegistry(prometheus.NewRegistry()))
				NewManager(WithRegistry(prometheus.NewRegistry()))
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager with a custom namespace", t, func() {
		manager := NewManager(WithNamespace("test"), WithHistogramBuckets([]float64{0.1, 1}))

		Convey("When assessments and failures are recorded", func() {
			manager.RecordAssessment(KindAssessment, 5*time.Millisecond)
			manager.RecordAssessment(KindReport, 7*time.Millisecond)
			manager.RecordAssessment(KindReport, 9*time.Millisecond)
			manager.RecordValidationFailure()

			Convey("Then the counters reflect them", func() {
				So(testutil.ToFloat64(manager.assessments.WithLabelValues(KindAssessment)), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.assessments.WithLabelValues(KindReport)), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.validationFailures), ShouldEqual, 1)
			})
		})

		Convey("When an HTTP request is recorded", func() {
			manager.RecordHTTPRequest("/api/reports", "POST", "200", 20*time.Millisecond)

			Convey("Then the handler exposes it", func() {
				rec := httptest.NewRecorder()
				manager.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
				body, _ := io.ReadAll(rec.Body)

				So(rec.Code, ShouldEqual, 200)
				So(string(body), ShouldContainSubstring, `test_http_requests_total{method="POST",route="/api/reports",status="200"} 1`)
				So(string(body), ShouldContainSubstring, "test_http_request_duration_seconds_bucket")
			})
		})
	})
}

func TestNilManager(t *testing.T) {
	Convey("Given a nil manager", t, func() {
		var manager *Manager

		Convey("When anything is recorded", func() {
			Convey("Then it is a no-op", func() {
				So(func() {
					manager.RecordAssessment(KindReport, time.Millisecond)
					manager.RecordValidationFailure()
					manager.RecordHTTPRequest("/healthz", "GET", "200", time.Millisecond)
				}, ShouldNotPanic)
				So(manager.Registry(), ShouldBeNil)
			})
		})

		Convey("When its handler is served", func() {
			rec := httptest.NewRecorder()
			manager.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

			Convey("Then it answers 404", func() {
				So(rec.Code, ShouldEqual, 404)
			})
		})
	})
}
