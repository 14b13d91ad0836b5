package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/matzehuels/busstop/pkg/arrivals"
	"github.com/matzehuels/busstop/pkg/config"
	"github.com/matzehuels/busstop/pkg/errors"
	"github.com/matzehuels/busstop/pkg/observability"
)

// Runner reads the configuration and aggregates every configured stop.
//
// The Runner keeps no state between runs except what the aggregator owns
// (the stop-name cache). The configuration is read again on every run.
// It is safe for concurrent use.
type Runner struct {
	Aggregator *arrivals.Aggregator
	Options    Options
	Logger     *log.Logger
}

// NewRunner creates a runner. Invalid options fall back to their defaults.
func NewRunner(agg *arrivals.Aggregator, opts Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		logger.Warn("invalid runner options, using defaults", "err", err)
		opts = Options{ConfigPath: opts.ConfigPath}
		_ = opts.ValidateAndSetDefaults()
	}
	return &Runner{Aggregator: agg, Options: opts, Logger: logger}
}

// ConfigPath returns the configuration file the next run will read.
func (r *Runner) ConfigPath() string {
	return config.Resolve(r.Options.ConfigPath)
}

// RunAll produces one board per configured stop, in configured order.
//
// It never returns an empty slice. When the configuration cannot be read
// the result is a single sentinel board: one naming the missing section,
// or a generic processing error for anything else.
func (r *Runner) RunAll(ctx context.Context) []arrivals.StopResult {
	logger := r.Logger.With("run", uuid.NewString())
	path := r.ConfigPath()

	cfg, err := config.Load(path)
	if err != nil {
		logger.Error("configuration error", "path", path, "err", err)
		return []arrivals.StopResult{r.configSentinel(err)}
	}
	logger.Debug("loaded configuration", "path", cfg.Path, "stops", len(cfg.Stops))

	start := time.Now()
	results := make([]arrivals.StopResult, len(cfg.Stops))
	p := pool.New().WithMaxGoroutines(r.Options.Parallelism)
	for i, stop := range cfg.Stops {
		i, stop := i, stop
		p.Go(func() {
			results[i] = r.aggregate(ctx, logger, stop)
		})
	}
	p.Wait()

	logger.Debug("run complete", "stops", len(results), "duration", time.Since(start))
	return results
}

func (r *Runner) aggregate(ctx context.Context, logger *log.Logger, stop config.Stop) arrivals.StopResult {
	hooks := observability.Board()
	hooks.OnStopStart(ctx, stop.ID)
	start := time.Now()

	res := r.Aggregator.Aggregate(ctx, stop.ID, stop.Count)

	count := len(res.Arrivals)
	if res.Status != arrivals.StatusOK {
		count = 0
	}
	hooks.OnStopComplete(ctx, stop.ID, count, string(res.Status), time.Since(start))
	logger.Debug("aggregated stop",
		"stop", stop.ID,
		"name", res.StopName,
		"arrivals", count,
		"status", res.Status)
	return res
}

func (r *Runner) configSentinel(err error) arrivals.StopResult {
	msg := ConfigErrorGeneric
	if errors.Is(err, errors.ErrCodeConfigSectionMissing) {
		msg = ConfigErrorPrefix + errors.UserMessage(err)
	}
	return arrivals.Sentinel(arrivals.UnknownStop, r.Aggregator.Now(), arrivals.StatusConfigError, msg, err.Error())
}
