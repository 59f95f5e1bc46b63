// Package metrics provides Prometheus metrics for the fitcalc batch.
package metrics

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Default bucket layouts.
var (
	caloriesBuckets = []float64{50, 100, 200, 400, 800, 1600, 3200}
	distanceBuckets = []float64{0.5, 1, 2, 5, 10, 21.1, 42.2}
)

// Manager manages all Prometheus metrics for the fitcalc batch.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	workoutsProcessed *prometheus.CounterVec
	recordErrors      *prometheus.CounterVec
	caloriesBurned    *prometheus.HistogramVec
	distanceKm        *prometheus.HistogramVec
	runDuration       prometheus.Histogram
	lastRunRecords    *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Without WithPrometheusRegistry it
// registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fitcalc",
		subsystem:        "batch",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.workoutsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workouts_processed_total",
		Help:      "Total number of sensor packages summarised, by workout code",
	}, []string{"code"})

	m.recordErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "record_errors_total",
		Help:      "Total number of sensor packages rejected, by error kind",
	}, []string{"kind"})

	m.caloriesBurned = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "calories_burned",
		Help:      "Distribution of computed kilocalories, by workout code",
		Buckets:   caloriesBuckets,
	}, []string{"code"})

	m.distanceKm = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "distance_km",
		Help:      "Distribution of computed distances in kilometers, by workout code",
		Buckets:   distanceBuckets,
	}, []string{"code"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall time of a whole batch run",
		Buckets:   m.histogramBuckets,
	})

	m.lastRunRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_records",
		Help:      "Records handled by the most recent run, by outcome",
	}, []string{"outcome"})
}

// RecordWorkoutProcessed counts one summarised package.
func (m *Manager) RecordWorkoutProcessed(code string) {
	if !m.enabled {
		return
	}
	m.workoutsProcessed.WithLabelValues(code).Inc()
}

// RecordRecordError counts one rejected package.
func (m *Manager) RecordRecordError(kind string) {
	if !m.enabled {
		return
	}
	m.recordErrors.WithLabelValues(kind).Inc()
}

// ObserveWorkout records the computed calories and distance of one package.
func (m *Manager) ObserveWorkout(code string, distanceKm, calories float64) {
	if !m.enabled {
		return
	}
	m.distanceKm.WithLabelValues(code).Observe(distanceKm)
	m.caloriesBurned.WithLabelValues(code).Observe(calories)
}

// ObserveRunDuration records the wall time of one batch run.
func (m *Manager) ObserveRunDuration(seconds float64) {
	if !m.enabled {
		return
	}
	m.runDuration.Observe(seconds)
}

// UpdateLastRun publishes the outcome counts of the latest run.
func (m *Manager) UpdateLastRun(processed, failed int) {
	if !m.enabled {
		return
	}
	m.lastRunRecords.WithLabelValues("processed").Set(float64(processed))
	m.lastRunRecords.WithLabelValues("failed").Set(float64(failed))
}

// Registry returns the registry the manager publishes on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string
	Labels map[string]string
	// Value holds the counter or gauge value, or the histogram sum.
	Value float64
	// Count is the histogram sample count; zero for other types.
	Count uint64
}

// Snapshot gathers every metric on the registry as flat samples sorted by
// name.
func (m *Manager) Snapshot() ([]Sample, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}

	var samples []Sample
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			samples = append(samples, toSample(family, metric))
		}
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}

func toSample(family *dto.MetricFamily, metric *dto.Metric) Sample {
	s := Sample{Name: family.GetName(), Labels: make(map[string]string, len(metric.GetLabel()))}
	for _, pair := range metric.GetLabel() {
		s.Labels[pair.GetName()] = pair.GetValue()
	}
	switch family.GetType() {
	case dto.MetricType_COUNTER:
		s.Value = metric.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		s.Value = metric.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		s.Value = metric.GetHistogram().GetSampleSum()
		s.Count = metric.GetHistogram().GetSampleCount()
	default:
		s.Value = metric.GetUntyped().GetValue()
	}
	return s
}

// RecordWorkoutProcessed counts one summarised package on the global manager.
func RecordWorkoutProcessed(code string) {
	globalManager.RecordWorkoutProcessed(code)
}

// RecordRecordError counts one rejected package on the global manager.
func RecordRecordError(kind string) {
	globalManager.RecordRecordError(kind)
}

// ObserveWorkout records one package's distance and calories globally.
func ObserveWorkout(code string, distanceKm, calories float64) {
	globalManager.ObserveWorkout(code, distanceKm, calories)
}

// ObserveRunDuration records the wall time of one batch run globally.
func ObserveRunDuration(seconds float64) {
	globalManager.ObserveRunDuration(seconds)
}

// UpdateLastRun publishes the latest run outcome globally.
func UpdateLastRun(processed, failed int) {
	globalManager.UpdateLastRun(processed, failed)
}

// Snapshot gathers the process-wide metrics.
func Snapshot() ([]Sample, error) {
	return globalManager.Snapshot()
}

// GetRegistry returns the process-wide registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
