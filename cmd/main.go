package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/fitcalc/internal/app"
	"github.com/okian/fitcalc/internal/config"
	"github.com/okian/fitcalc/internal/domain/model"
	"github.com/okian/fitcalc/internal/domain/summary"
	"github.com/okian/fitcalc/pkg/logger"
	"github.com/okian/fitcalc/pkg/metrics"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
)

func main() {
	os.Exit(run())
}

// run wires configuration, logging and the batch runner, and returns the
// process exit code.
func run() int {
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return exitFailure
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load config", logger.Error(err))
		return exitFailure
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	locale, err := summary.ParseLocale(cfg.Locale)
	if err != nil {
		loggerInstance.Error(ctx, "unsupported locale", logger.Error(err))
		return exitFailure
	}

	runner := app.New(
		app.WithLogger(loggerInstance.Named("runner")),
		app.WithOutput(os.Stdout),
		app.WithLocale(locale),
		app.WithErrorPolicy(app.ErrorPolicy(cfg.OnError)),
	)

	report, runErr := runner.Run(ctx, packagesFromConfig(cfg))

	if cfg.MetricsDump {
		dumpMetrics(ctx, loggerInstance.Named("metrics"))
	}

	if runErr != nil {
		loggerInstance.Error(ctx, "batch failed",
			logger.String("run_id", report.RunID),
			logger.Int("processed", report.Processed),
			logger.Int("failed", report.Failed),
			logger.Error(runErr),
		)
		return exitFailure
	}
	return exitOK
}

// packagesFromConfig returns the configured packages, or the built-in sample
// batch when none are configured.
func packagesFromConfig(cfg *config.Config) []model.Package {
	if len(cfg.Packages) == 0 {
		return model.DefaultPackages()
	}
	packages := make([]model.Package, len(cfg.Packages))
	for i, p := range cfg.Packages {
		data := make([]float64, len(p.Data))
		copy(data, p.Data)
		packages[i] = model.Package{Code: p.Code, Data: data}
	}
	return packages
}

// dumpMetrics logs every collected metric sample at info level.
func dumpMetrics(ctx context.Context, log logger.Logger) {
	samples, err := metrics.Snapshot()
	if err != nil {
		log.Warn(ctx, "metrics snapshot failed", logger.Error(err))
		return
	}
	for _, s := range samples {
		fields := []logger.Field{
			logger.String("name", s.Name),
			logger.Float64("value", s.Value),
		}
		if s.Count > 0 {
			fields = append(fields, logger.Any("count", s.Count))
		}
		for k, v := range s.Labels {
			fields = append(fields, logger.String(k, v))
		}
		log.Info(ctx, "metric", fields...)
	}
}
