package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it owns a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry(), ShouldNotEqual, GetRegistry())
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)
			manager.ObserveRunDuration(0.2)

			Convey("Then metric names follow the namespace and subsystem", func() {
				So(manager.Registry(), ShouldEqual, registry)
				samples, err := manager.Snapshot()
				So(err, ShouldBeNil)
				So(samples, ShouldHaveLength, 1)
				So(samples[0].Name, ShouldEqual, "test_namespace_test_subsystem_run_duration_seconds")
				So(samples[0].Count, ShouldEqual, uint64(1))
				So(samples[0].Value, ShouldAlmostEqual, 0.2, 1e-9)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording processed workouts and errors", func() {
			manager.RecordWorkoutProcessed("RUN")
			manager.RecordWorkoutProcessed("RUN")
			manager.RecordWorkoutProcessed("SWM")
			manager.RecordRecordError("unknown_code")
			manager.ObserveWorkout("RUN", 9.75, 699.75)
			manager.UpdateLastRun(3, 1)

			Convey("Then counters are labelled by code and kind", func() {
				So(testutil.ToFloat64(manager.workoutsProcessed.WithLabelValues("RUN")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(manager.workoutsProcessed.WithLabelValues("SWM")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(manager.recordErrors.WithLabelValues("unknown_code")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(manager.lastRunRecords.WithLabelValues("processed")), ShouldEqual, 3.0)
				So(testutil.ToFloat64(manager.lastRunRecords.WithLabelValues("failed")), ShouldEqual, 1.0)
			})

			Convey("Then the snapshot flattens every series", func() {
				samples, err := manager.Snapshot()
				So(err, ShouldBeNil)

				byKey := map[string]Sample{}
				for _, s := range samples {
					byKey[s.Name+"|"+s.Labels["code"]+s.Labels["kind"]+s.Labels["outcome"]] = s
				}
				So(byKey["fitcalc_batch_workouts_processed_total|RUN"].Value, ShouldEqual, 2.0)
				So(byKey["fitcalc_batch_record_errors_total|unknown_code"].Value, ShouldEqual, 1.0)
				So(byKey["fitcalc_batch_calories_burned|RUN"].Count, ShouldEqual, uint64(1))
				So(byKey["fitcalc_batch_calories_burned|RUN"].Value, ShouldAlmostEqual, 699.75, 1e-9)
				So(byKey["fitcalc_batch_distance_km|RUN"].Value, ShouldAlmostEqual, 9.75, 1e-9)
				So(byKey["fitcalc_batch_last_run_records|failed"].Value, ShouldEqual, 1.0)

				for i := 1; i < len(samples); i++ {
					So(samples[i-1].Name <= samples[i].Name, ShouldBeTrue)
				}
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		manager := NewManager(
			WithPrometheusRegistry(prometheus.NewRegistry()),
			WithMetricsEnabled(false),
		)

		Convey("When recording", func() {
			manager.RecordWorkoutProcessed("RUN")
			manager.RecordRecordError("malformed_package")
			manager.ObserveWorkout("RUN", 1, 1)
			manager.ObserveRunDuration(1)
			manager.UpdateLastRun(1, 0)

			Convey("Then nothing is collected", func() {
				samples, err := manager.Snapshot()
				So(err, ShouldBeNil)
				for _, s := range samples {
					So(s.Value, ShouldEqual, 0.0)
					So(s.Count, ShouldEqual, uint64(0))
				}
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the process-wide manager", t, func() {
		before := testutil.ToFloat64(globalManager.workoutsProcessed.WithLabelValues("WLK"))

		Convey("When the global helpers are used", func() {
			So(func() {
				RecordWorkoutProcessed("WLK")
				RecordRecordError("invalid_measurement")
				ObserveWorkout("WLK", 5.85, 157.5)
				ObserveRunDuration(0.01)
				UpdateLastRun(1, 1)
			}, ShouldNotPanic)

			Convey("Then they land on the global registry", func() {
				So(testutil.ToFloat64(globalManager.workoutsProcessed.WithLabelValues("WLK")), ShouldEqual, before+1)
				samples, err := Snapshot()
				So(err, ShouldBeNil)
				So(samples, ShouldNotBeEmpty)
			})
		})
	})
}
