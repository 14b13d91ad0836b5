// Package httputil provides the retry policy shared by the TfL clients.
//
// # Retry
//
// [Retry] runs an operation with capped exponential backoff built on
// github.com/cenkalti/backoff/v4. Only failures wrapped in [RetryableError]
// are retried; anything else ends the loop at once:
//
//	err := httputil.Retry(ctx, httputil.DefaultPolicy(), func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	}, nil)
//
// With [DefaultPolicy] the waits are 1s, 2s, 4s, 8s and the fifth failure
// ends the loop with an [*ExhaustedError].
package httputil
