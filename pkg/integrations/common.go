package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/matzehuels/busstop/pkg/httputil"
)

// DefaultTimeout is the per-request timeout used when callers pass zero.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned (wrapped) for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (connection errors, error statuses).
	ErrNetwork = errors.New("network error")

	// ErrTimeout is returned when a single request exceeds its timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("invalid response body")
)

// StatusError describes a non-2xx HTTP response.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Reason)
}

// Is lets errors.Is match ErrNetwork for any status and ErrNotFound for 404.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return true
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}

// NewHTTPClient creates an HTTP client without a global timeout; each
// request carries its own deadline through its context.
func NewHTTPClient() *http.Client {
	return &http.Client{}
}

// FailureMessage renders a fetch error the way it appears in the legacy
// failure payload, including the attempt count when retries ran out.
func FailureMessage(err error) string {
	var exhausted *httputil.ExhaustedError
	if errors.As(err, &exhausted) {
		return fmt.Sprintf("Failed to fetch data after %d attempts: %v", exhausted.Attempts, exhausted.Err)
	}
	return fmt.Sprintf("Failed to fetch data: %v", err)
}

// FailurePayload builds the untagged failure shape
// {"arrivals": [{"noInfo": "..."}]} for err. It has the same shape as an
// arrivals response with no information, so consumers of the raw
// passthrough can treat both alike.
func FailurePayload(err error) map[string]any {
	return map[string]any{
		"arrivals": []map[string]string{
			{"noInfo": FailureMessage(err)},
		},
	}
}
