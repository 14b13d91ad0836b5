package render

import (
	"strings"

	"github.com/matzehuels/busstop/pkg/arrivals"
)

// Filter selects arrivals by line and destination. Empty fields match
// everything.
type Filter struct {
	// Line matches the line name exactly, ignoring case.
	Line string
	// Destination matches any destination containing it, ignoring case.
	Destination string
}

// Active reports whether the filter excludes anything.
func (f Filter) Active() bool {
	return f.Line != "" || f.Destination != ""
}

// Match reports whether a passes the filter. Sentinel rows always pass.
func (f Filter) Match(a arrivals.Arrival) bool {
	if a.IsSentinel() {
		return true
	}
	if f.Line != "" && !strings.EqualFold(a.LineName, f.Line) {
		return false
	}
	if f.Destination != "" && !strings.Contains(strings.ToLower(a.DestinationName), strings.ToLower(f.Destination)) {
		return false
	}
	return true
}

// Apply returns copies of results keeping only matching arrivals. Row
// numbers are left as they were. A board left without rows gets the
// "no information" row.
func (f Filter) Apply(results []arrivals.StopResult) []arrivals.StopResult {
	if !f.Active() {
		return results
	}
	out := make([]arrivals.StopResult, len(results))
	for i, res := range results {
		kept := make([]arrivals.Arrival, 0, len(res.Arrivals))
		for _, a := range res.Arrivals {
			if f.Match(a) {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			kept = append(kept, arrivals.NoInfo(arrivals.NoInfoMessage))
		}
		res.Arrivals = kept
		out[i] = res
	}
	return out
}
