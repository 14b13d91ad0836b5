package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/busstop/pkg/httputil"
	"github.com/matzehuels/busstop/pkg/observability"
)

// Client fetches JSON resources relative to a base URL, retrying transient
// failures with capped exponential backoff.
//
// A Client is safe for concurrent use once configured.
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
	query   url.Values
	logger  *log.Logger

	// Policy controls retries. It defaults to [httputil.DefaultPolicy].
	Policy httputil.Policy
}

// NewClient creates a Client for resources under baseURL.
// Headers are applied to all requests; pass nil if none are needed.
// A nil logger falls back to log.Default().
func NewClient(baseURL string, headers map[string]string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		http:    NewHTTPClient(),
		baseURL: baseURL,
		headers: headers,
		query:   url.Values{},
		logger:  logger,
		Policy:  httputil.DefaultPolicy(),
	}
}

// BaseURL returns the URL that resource paths are appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Logger returns the logger the client reports requests to.
func (c *Client) Logger() *log.Logger { return c.logger }

// SetQuery adds a query parameter sent with every request, such as an API key.
// An empty value is ignored.
func (c *Client) SetQuery(key, value string) {
	if value != "" {
		c.query.Set(key, value)
	}
}

// Fetch performs GET baseURL+path and JSON-decodes the body into v.
//
// Each attempt is bounded by timeout (DefaultTimeout when zero). Connection
// failures, timeouts and non-2xx statuses are retried according to
// c.Policy; a body that is not valid JSON for v fails at once with
// ErrDecode. When retries run out the returned error is an
// [*httputil.ExhaustedError].
func (c *Client) Fetch(ctx context.Context, path string, timeout time.Duration, v any) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	target := c.url(path)

	err := httputil.Retry(ctx, c.Policy, func() error {
		return c.attempt(ctx, target, timeout, v)
	}, func(err error, attempt int, delay time.Duration) {
		c.logger.Warn("request failed, retrying",
			"url", target,
			"attempt", attempt,
			"retry_in", delay,
			"err", err)
	})

	var exhausted *httputil.ExhaustedError
	if errors.As(err, &exhausted) {
		c.logger.Error("request failed, giving up",
			"url", target,
			"attempts", exhausted.Attempts,
			"err", exhausted.Err)
	}
	return err
}

func (c *Client) url(path string) string {
	target := c.baseURL + path
	if len(c.query) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + c.query.Encode()
}

func (c *Client) attempt(ctx context.Context, target string, timeout time.Duration, v any) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return httputil.Retryable(fmt.Errorf("%w: %v", ErrTimeout, err))
		}
		return httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httputil.Retryable(fmt.Errorf("%w: read body: %v", ErrNetwork, err))
	}

	c.logger.Info("fetched", "status", resp.StatusCode, "reason", http.StatusText(resp.StatusCode), "url", target)

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func checkStatus(code int) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return httputil.Retryable(&StatusError{Code: code, Reason: http.StatusText(code)})
}
