package tfl

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/busstop/pkg/buildinfo"
	"github.com/matzehuels/busstop/pkg/errors"
	"github.com/matzehuels/busstop/pkg/integrations"
)

const (
	// DefaultBaseURL is the StopPoint API root. Resource paths are appended
	// directly, so it keeps its trailing slash.
	DefaultBaseURL = "https://api.tfl.gov.uk/StopPoint/"

	// RequestTimeout bounds each individual request.
	RequestTimeout = 10 * time.Second

	// AppKeyEnv names the environment variable holding an optional
	// application key, sent as the app_key query parameter.
	AppKeyEnv = "TFL_APP_KEY"
)

// Client provides access to the TfL StopPoint API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
}

// NewClient creates a StopPoint client rooted at baseURL (DefaultBaseURL
// when empty). Requests identify themselves with the busstop User-Agent;
// TfL's edge rejects anonymous clients.
func NewClient(baseURL string, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{Client: integrations.NewClient(baseURL, headers, logger)}
}

// StopPoint fetches the metadata of a stop.
func (c *Client) StopPoint(ctx context.Context, stopID string) (StopPoint, error) {
	var sp StopPoint
	if err := errors.ValidateStopID(stopID); err != nil {
		return sp, err
	}
	err := c.Fetch(ctx, stopID, RequestTimeout, &sp)
	return sp, err
}

// Arrivals fetches the live predictions for a stop, in the order the API
// returned them.
//
// The response must be a JSON array. Elements are decoded one at a time;
// an element that does not decode is returned as an empty Prediction so
// that it is rejected downstream without losing the rest of the list.
func (c *Client) Arrivals(ctx context.Context, stopID string) ([]Prediction, error) {
	raw, err := c.rawArrivals(ctx, stopID)
	if err != nil {
		return nil, err
	}

	out := make([]Prediction, len(raw))
	for i, msg := range raw {
		var p Prediction
		if err := json.Unmarshal(msg, &p); err != nil {
			c.Logger().Debug("undecodable prediction", "stop", stopID, "index", i, "err", err)
			p = Prediction{}
		}
		out[i] = p
	}
	return out, nil
}

// RawArrivals returns the Arrivals response body as received, for
// passthrough consumers.
func (c *Client) RawArrivals(ctx context.Context, stopID string) (json.RawMessage, error) {
	if err := errors.ValidateStopID(stopID); err != nil {
		return nil, err
	}
	var body json.RawMessage
	if err := c.Fetch(ctx, arrivalsPath(stopID), RequestTimeout, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) rawArrivals(ctx context.Context, stopID string) ([]json.RawMessage, error) {
	if err := errors.ValidateStopID(stopID); err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := c.Fetch(ctx, arrivalsPath(stopID), RequestTimeout, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func arrivalsPath(stopID string) string {
	return stopID + "/Arrivals"
}
