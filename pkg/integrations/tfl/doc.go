// Package tfl provides an HTTP client for the Transport for London
// StopPoint API.
//
// # Usage
//
//	client := tfl.NewClient("", logger) // DefaultBaseURL
//	client.SetQuery("app_key", os.Getenv(tfl.AppKeyEnv))
//
//	sp, err := client.StopPoint(ctx, "490005432S2")
//	preds, err := client.Arrivals(ctx, "490005432S2")
//
// Requests go through [integrations.Client], so transient failures are
// retried with capped exponential backoff and exhaustion surfaces as an
// [*httputil.ExhaustedError].
//
// [Prediction] keeps the fields needed for display as pointers; it is the
// caller's job to reject records with missing fields.
package tfl
