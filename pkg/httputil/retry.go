package httputil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Default retry policy values.
const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = time.Second
	DefaultMaxDelay    = 10 * time.Second
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network errors, timeouts, HTTP error statuses)
// with this type so that [Retry] attempts the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a RetryableError. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped with RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// ExhaustedError is returned by [Retry] when every attempt failed with a
// retryable error.
type ExhaustedError struct {
	Attempts int   // number of attempts made
	Err      error // last error observed
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Policy controls how many times [Retry] tries and how long it waits.
//
// The wait after the n-th failure (n counted from 0) is
// min(2^n * BaseDelay, MaxDelay). There is no jitter.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultPolicy returns the policy used for TfL requests.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// Delay returns the wait after the failure with the given zero-based index.
func (p Policy) Delay(attempt int) time.Duration {
	p = p.withDefaults()
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		if d >= p.MaxDelay/2 {
			return p.MaxDelay
		}
		d *= 2
	}
	return min(d, p.MaxDelay)
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	return p
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.MaxInterval = p.MaxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.MaxAttempts-1)), ctx)
}

// Notify is called after each failed attempt that will be retried, with
// the error, the 1-based attempt number and the wait before the next try.
type Notify func(err error, attempt int, delay time.Duration)

// Retry executes fn until it succeeds, returns a non-retryable error, or
// the policy's attempts are used up.
//
// Only errors wrapped with [RetryableError] are retried; other errors are
// returned immediately and unchanged. When all attempts fail, Retry
// returns an [*ExhaustedError] carrying the last error. Cancelling ctx
// interrupts the backoff wait and returns ctx.Err().
func Retry(ctx context.Context, p Policy, fn func() error, notify Notify) error {
	p = p.withDefaults()
	attempts := 0

	op := func() error {
		attempts++
		err := fn()
		if err == nil || IsRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.RetryNotify(op, p.backOff(ctx), func(err error, d time.Duration) {
		if notify != nil {
			notify(err, attempts, d)
		}
	})
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return err
	case IsRetryable(err):
		return &ExhaustedError{Attempts: attempts, Err: err}
	default:
		return err
	}
}
