// Package integrations provides the HTTP client used to talk to the TfL API.
//
// # Overview
//
// [Client] fetches JSON resources relative to a base URL. Every request
// carries its own timeout, and transient failures (connection errors,
// timeouts, non-2xx statuses) are retried with capped exponential backoff
// from [httputil.Retry]. Each attempt is reported to
// [observability.HTTP] and logged with charmbracelet/log.
//
// The StopPoint endpoints live in the [tfl] subpackage:
//
//	client := tfl.NewClient(tfl.DefaultBaseURL, logger)
//	point, err := client.StopPoint(ctx, "490005432S2")
//	preds, err := client.Arrivals(ctx, "490005432S2")
//
// # Failures
//
// When retries run out the error is an [*httputil.ExhaustedError].
// [FailurePayload] turns such an error into the untagged
// {"arrivals": [{"noInfo": "..."}]} shape for consumers that expect data
// rather than an error.
//
// [tfl]: github.com/matzehuels/busstop/pkg/integrations/tfl
// [httputil.Retry]: github.com/matzehuels/busstop/pkg/httputil.Retry
// [*httputil.ExhaustedError]: github.com/matzehuels/busstop/pkg/httputil.ExhaustedError
// [observability.HTTP]: github.com/matzehuels/busstop/pkg/observability.HTTP
package integrations
