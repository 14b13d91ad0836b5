package arrivals

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/busstop/pkg/cache"
	"github.com/matzehuels/busstop/pkg/integrations"
	"github.com/matzehuels/busstop/pkg/integrations/tfl"
)

// Source is the upstream the aggregator reads from. *tfl.Client
// implements it.
type Source interface {
	StopPointSource
	Arrivals(ctx context.Context, stopID string) ([]tfl.Prediction, error)
}

// Aggregator builds the board for one stop at a time.
type Aggregator struct {
	source Source
	names  *Names
	logger *log.Logger
	now    func() time.Time
	loc    *time.Location
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock sets the clock used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLocation overrides the zone used for rendered times.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// NewAggregator creates an Aggregator reading from source. Stop names are
// kept in names; pass a [cache.MemoryCache] that outlives the aggregator
// to share them across runs, or nil to resolve on every call.
func NewAggregator(source Source, names cache.Cache, opts ...Option) *Aggregator {
	a := &Aggregator{
		source: source,
		logger: log.Default(),
		now:    time.Now,
		loc:    London,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.names = NewNames(source, names, a.logger)
	return a
}

// Names returns the stop-name resolver used by the aggregator.
func (a *Aggregator) Names() *Names { return a.names }

// Now returns the aggregator's current time stamp string.
func (a *Aggregator) Now() string { return Stamp(a.now(), a.loc) }

// Aggregate fetches, orders and formats up to count arrivals for stopID.
//
// It never fails: a fetch error, an empty upstream list or a list of only
// malformed records all produce a single "no information" row, with the
// cause recorded in Status and Reason.
func (a *Aggregator) Aggregate(ctx context.Context, stopID string, count int) StopResult {
	preds, fetchErr := a.source.Arrivals(ctx, stopID)
	if fetchErr == nil {
		sort.SliceStable(preds, func(i, j int) bool {
			return preds[i].ExpectedArrivalKey() < preds[j].ExpectedArrivalKey()
		})
	}

	name, ok := a.names.Resolve(ctx, stopID)
	if !ok {
		name = UnknownStop
	}
	stamp := a.Now()

	rows := make([]Arrival, 0, min(max(count, 0), len(preds)))
	for _, p := range preds {
		if len(rows) >= count {
			break
		}
		row, err := Parse(p, len(rows)+1, a.loc)
		if err != nil {
			a.logger.Warn("skipping malformed prediction", "stop", stopID, "err", err)
			continue
		}
		rows = append(rows, row)
	}

	switch {
	case fetchErr != nil:
		reason := integrations.FailureMessage(fetchErr)
		a.logger.Error("arrivals unavailable", "stop", stopID, "reason", reason)
		return Sentinel(name, stamp, StatusFetchFailed, NoInfoMessage, reason)
	case len(rows) == 0:
		return Sentinel(name, stamp, StatusEmpty, NoInfoMessage, "")
	}
	return StopResult{
		StopName:    name,
		DateAndTime: stamp,
		Arrivals:    rows,
		Status:      StatusOK,
	}
}
