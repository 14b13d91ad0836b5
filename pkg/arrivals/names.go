package arrivals

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/busstop/pkg/cache"
	"github.com/matzehuels/busstop/pkg/integrations/tfl"
	"github.com/matzehuels/busstop/pkg/observability"
)

const namesKeyType = "stop_name"

// StopPointSource looks up stop metadata.
type StopPointSource interface {
	StopPoint(ctx context.Context, stopID string) (tfl.StopPoint, error)
}

// Names resolves stop identifiers to display names.
//
// Resolved names are stored without expiry and never refreshed: a stop
// keeps the first name it was resolved to for the lifetime of the cache.
// Failed or nameless lookups are not stored and are retried on the next
// call. Names is safe for concurrent use when its cache is.
type Names struct {
	source StopPointSource
	cache  *cache.Scoped
	logger *log.Logger
}

// NewNames creates a resolver backed by c. Keys are stored under the
// "stop_name:" prefix so c can be shared. A nil c disables caching.
func NewNames(source StopPointSource, c cache.Cache, logger *log.Logger) *Names {
	if logger == nil {
		logger = log.Default()
	}
	return &Names{
		source: source,
		cache:  cache.NewScoped(c, namesKeyType+":"),
		logger: logger,
	}
}

// Resolve returns the name of stopID and whether one was found.
func (n *Names) Resolve(ctx context.Context, stopID string) (string, bool) {
	hooks := observability.Cache()

	data, ok, err := n.cache.Get(ctx, stopID)
	if err != nil {
		n.logger.Debug("stop name cache read failed", "stop", stopID, "err", err)
	}
	if ok {
		hooks.OnCacheHit(ctx, namesKeyType)
		return string(data), true
	}
	hooks.OnCacheMiss(ctx, namesKeyType)

	sp, err := n.source.StopPoint(ctx, stopID)
	if err != nil {
		n.logger.Warn("stop name lookup failed", "stop", stopID, "err", err)
		return "", false
	}
	if sp.CommonName == "" {
		return "", false
	}

	if err := n.cache.Set(ctx, stopID, []byte(sp.CommonName), 0); err != nil {
		n.logger.Debug("stop name cache write failed", "stop", stopID, "err", err)
	} else {
		hooks.OnCacheSet(ctx, namesKeyType, len(sp.CommonName))
	}
	return sp.CommonName, true
}
