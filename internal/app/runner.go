// Package service drives a batch of sensor packages through dispatch,
// computation and rendering, emitting one summary line per package.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fitcalc/internal/domain/dispatch"
	"github.com/okian/fitcalc/internal/domain/model"
	"github.com/okian/fitcalc/internal/domain/summary"
	"github.com/okian/fitcalc/internal/domain/workout"
	"github.com/okian/fitcalc/pkg/logger"
	"github.com/okian/fitcalc/pkg/metrics"
)

// ErrorPolicy decides what a failing package does to the rest of the batch.
type ErrorPolicy string

// Supported error policies.
const (
	// PolicyAbort stops the batch at the first failing package.
	PolicyAbort ErrorPolicy = "abort"
	// PolicySkip logs the failing package and continues with the next one.
	PolicySkip ErrorPolicy = "skip"
)

// Error kinds used as metric labels.
const (
	kindUnknownCode        = "unknown_code"
	kindMalformedPackage   = "malformed_package"
	kindInvalidMeasurement = "invalid_measurement"
	kindOther              = "other"
)

// Dispatcher builds a workout from a raw package.
type Dispatcher interface {
	ReadPackage(code string, data []float64) (workout.Workout, error)
}

// DispatcherFunc adapts a plain function to Dispatcher.
type DispatcherFunc func(code string, data []float64) (workout.Workout, error)

// ReadPackage calls f.
func (f DispatcherFunc) ReadPackage(code string, data []float64) (workout.Workout, error) {
	return f(code, data)
}

// Report summarises one batch run.
type Report struct {
	RunID     string
	Processed int
	Failed    int
}

// Runner processes batches of sensor packages. A Runner keeps no state
// between packages or runs.
type Runner struct {
	dispatcher Dispatcher
	out        io.Writer
	locale     summary.Locale
	policy     ErrorPolicy
	logger     logger.Logger
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithOutput sets where summary lines are written.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLocale sets the summary wording.
func WithLocale(locale summary.Locale) Option {
	return func(r *Runner) {
		if locale != "" {
			r.locale = locale
		}
	}
}

// WithErrorPolicy sets the failure policy. Unknown policies are ignored.
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(r *Runner) {
		switch policy {
		case PolicyAbort, PolicySkip:
			r.policy = policy
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDispatcher replaces the package dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(r *Runner) {
		if d != nil {
			r.dispatcher = d
		}
	}
}

// New constructs a Runner writing English summaries to stdout and aborting
// on the first failure.
func New(opts ...Option) *Runner {
	r := &Runner{
		dispatcher: DispatcherFunc(dispatch.ReadPackage),
		out:        os.Stdout,
		locale:     summary.LocaleEN,
		policy:     PolicyAbort,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logger.Get().Named("runner")
	}

	return r
}

// Process turns one package into its summary message.
func (r *Runner) Process(_ context.Context, pkg model.Package) (summary.Message, error) {
	w, err := r.dispatcher.ReadPackage(pkg.Code, pkg.Data)
	if err != nil {
		return summary.Message{}, err
	}
	return summary.ShowTrainingInfo(w), nil
}

// Run processes packages in order and writes one line per successful
// package. Under PolicyAbort the first failure stops the run and is
// returned; under PolicySkip failures are logged and counted in the report.
// Output write failures always stop the run.
func (r *Runner) Run(ctx context.Context, packages []model.Package) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	start := time.Now()
	defer func() {
		metrics.ObserveRunDuration(time.Since(start).Seconds())
		metrics.UpdateLastRun(report.Processed, report.Failed)
	}()

	r.logger.Info(ctx, "batch started",
		logger.String("run_id", report.RunID),
		logger.Int("packages", len(packages)),
		logger.String("policy", string(r.policy)),
	)

	for i, pkg := range packages {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("batch interrupted before package %d: %w", i, err)
		}

		msg, err := r.Process(ctx, pkg)
		if err != nil {
			report.Failed++
			metrics.RecordRecordError(errorKind(err))
			r.logger.Warn(ctx, "package rejected",
				logger.String("run_id", report.RunID),
				logger.Int("index", i),
				logger.String("code", pkg.Code),
				logger.Error(err),
			)
			if r.policy == PolicyAbort {
				return report, fmt.Errorf("package %d (%s): %w", i, pkg.Code, err)
			}
			continue
		}

		if _, err := io.WriteString(r.out, msg.Render(r.locale)+"\n"); err != nil {
			return report, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		report.Processed++
		metrics.RecordWorkoutProcessed(pkg.Code)
		metrics.ObserveWorkout(pkg.Code, msg.Distance, msg.Calories)
		r.logger.Debug(ctx, "package summarised",
			logger.String("run_id", report.RunID),
			logger.Int("index", i),
			logger.String("code", pkg.Code),
			logger.Float64("distance_km", msg.Distance),
			logger.Float64("speed_kmh", msg.Speed),
			logger.Float64("calories", msg.Calories),
		)
	}

	r.logger.Info(ctx, "batch finished",
		logger.String("run_id", report.RunID),
		logger.Int("processed", report.Processed),
		logger.Int("failed", report.Failed),
	)
	return report, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, dispatch.ErrUnknownWorkoutCode):
		return kindUnknownCode
	case errors.Is(err, dispatch.ErrMalformedPackage):
		return kindMalformedPackage
	case errors.Is(err, workout.ErrInvalidMeasurement):
		return kindInvalidMeasurement
	default:
		return kindOther
	}
}
