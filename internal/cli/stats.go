package cli

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/busstop/pkg/arrivals"
	"github.com/matzehuels/busstop/pkg/observability"
)

// runStats counts events reported through the observability hooks.
type runStats struct {
	requests    atomic.Int64
	httpErrors  atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	stops       atomic.Int64
	failedStops atomic.Int64
}

func newRunStats() *runStats { return &runStats{} }

func (s *runStats) register() {
	observability.SetHTTPHooks(s)
	observability.SetCacheHooks(s)
	observability.SetBoardHooks(s)
}

func (s *runStats) OnRequest(context.Context, string, string, string) { s.requests.Add(1) }

func (s *runStats) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	if status >= 400 {
		s.httpErrors.Add(1)
	}
}

func (s *runStats) OnError(context.Context, string, string, string, error) { s.httpErrors.Add(1) }

func (s *runStats) OnCacheHit(context.Context, string)      { s.cacheHits.Add(1) }
func (s *runStats) OnCacheMiss(context.Context, string)     { s.cacheMisses.Add(1) }
func (s *runStats) OnCacheSet(context.Context, string, int) {}

func (s *runStats) OnStopStart(context.Context, string) {}

func (s *runStats) OnStopComplete(_ context.Context, _ string, _ int, status string, _ time.Duration) {
	s.stops.Add(1)
	if status == string(arrivals.StatusFetchFailed) {
		s.failedStops.Add(1)
	}
}

// log writes the counters at debug level and resets them.
func (s *runStats) log(l *log.Logger) {
	l.Debug("run stats",
		"stops", s.stops.Swap(0),
		"failed", s.failedStops.Swap(0),
		"requests", s.requests.Swap(0),
		"http_errors", s.httpErrors.Swap(0),
		"name_hits", s.cacheHits.Swap(0),
		"name_misses", s.cacheMisses.Swap(0))
}

var (
	_ observability.HTTPHooks  = (*runStats)(nil)
	_ observability.CacheHooks = (*runStats)(nil)
	_ observability.BoardHooks = (*runStats)(nil)
)
