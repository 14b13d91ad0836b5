// Package pipeline runs one full board refresh: read the configuration,
// aggregate every configured stop, and return the boards in configured
// order.
//
// The same Runner backs the one-shot CLI, the watch view and the HTTP
// server, so all three degrade the same way. A configuration problem
// becomes a single sentinel board rather than an error:
//
//	runner := pipeline.NewRunner(agg, pipeline.Options{ConfigPath: path}, logger)
//	boards := runner.RunAll(ctx) // never empty
package pipeline

import (
	"fmt"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultParallelism aggregates one stop at a time.
	DefaultParallelism = 1

	// MaxParallelism bounds concurrent stop aggregation.
	MaxParallelism = 16
)

// Messages shown in place of arrivals when the configuration cannot be used.
const (
	ConfigErrorPrefix  = "Configuration error: "
	ConfigErrorGeneric = "Error processing configuration file."
)

// Options configures a Runner.
type Options struct {
	// ConfigPath is an explicit configuration file. Empty means the
	// usual lookup (BUSSTOP_HOME, home directory, built-in default).
	ConfigPath string

	// Parallelism is the number of stops aggregated at once.
	Parallelism int
}

// ValidateAndSetDefaults fills in zero values and rejects out-of-range
// settings.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Parallelism == 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.Parallelism < 1 || o.Parallelism > MaxParallelism {
		return fmt.Errorf("parallelism must be between 1 and %d, got %d", MaxParallelism, o.Parallelism)
	}
	return nil
}
