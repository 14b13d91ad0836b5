package tfl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	bserrors "github.com/matzehuels/busstop/pkg/errors"
	"github.com/matzehuels/busstop/pkg/httputil"
	"github.com/matzehuels/busstop/pkg/integrations"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/StopPoint/", log.New(io.Discard))
	client.Policy = httputil.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	return client
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", nil)
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}
	if client.Policy != httputil.DefaultPolicy() {
		t.Errorf("Policy = %+v, want default", client.Policy)
	}
}

func TestStopPoint(t *testing.T) {
	var gotPath, gotAgent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"$type":"Tfl.Api.Presentation.Entities.StopPoint","naptanId":"490005432S2","commonName":"Oxford Circus"}`))
	})

	sp, err := client.StopPoint(context.Background(), "490005432S2")
	if err != nil {
		t.Fatalf("StopPoint() error: %v", err)
	}
	if sp.CommonName != "Oxford Circus" || sp.NaptanID != "490005432S2" {
		t.Errorf("StopPoint() = %+v", sp)
	}
	if gotPath != "/StopPoint/490005432S2" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAgent == "" {
		t.Error("User-Agent header not sent")
	}
}

func TestStopPointInvalidID(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	for _, id := range []string{"", "../secret", "a b", "x?y=1"} {
		_, err := client.StopPoint(context.Background(), id)
		if !bserrors.Is(err, bserrors.ErrCodeInvalidStopID) {
			t.Errorf("StopPoint(%q) error = %v, want INVALID_STOP_ID", id, err)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("invalid ids reached the server %d times", calls.Load())
	}
}

func TestArrivals(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[
			{"lineName":"12","destinationName":"Oxford Circus","expectedArrival":"2025-04-20T20:00:00Z","timeToStation":120,"platformName":"S2"},
			{"lineName":"88","expectedArrival":"2025-04-20T20:05:00Z","timeToStation":420},
			{"lineName":12}
		]`))
	})

	preds, err := client.Arrivals(context.Background(), "490005432S2")
	if err != nil {
		t.Fatalf("Arrivals() error: %v", err)
	}
	if gotPath != "/StopPoint/490005432S2/Arrivals" {
		t.Errorf("path = %q", gotPath)
	}
	if len(preds) != 3 {
		t.Fatalf("len(preds) = %d, want 3", len(preds))
	}

	first := preds[0]
	if first.LineName == nil || *first.LineName != "12" {
		t.Errorf("preds[0].LineName = %v", first.LineName)
	}
	if first.TimeToStation == nil || *first.TimeToStation != 120 {
		t.Errorf("preds[0].TimeToStation = %v", first.TimeToStation)
	}
	if first.PlatformName != "S2" {
		t.Errorf("preds[0].PlatformName = %q", first.PlatformName)
	}

	if preds[1].DestinationName != nil {
		t.Errorf("missing destinationName should decode as nil, got %q", *preds[1].DestinationName)
	}

	// lineName of the wrong type: the whole record decodes empty.
	if preds[2] != (Prediction{}) {
		t.Errorf("undecodable record = %+v, want zero Prediction", preds[2])
	}
}

func TestArrivalsNotAnArray(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"message":"The following stop point is not recognised: nope"}`))
	})

	_, err := client.Arrivals(context.Background(), "nope")
	if !errors.Is(err, integrations.ErrDecode) {
		t.Errorf("Arrivals() error = %v, want ErrDecode", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (decode errors are not retried)", calls.Load())
	}
}

func TestArrivalsExhausted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Arrivals(context.Background(), "490005432S2")
	var exhausted *httputil.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Arrivals() error = %v, want ExhaustedError", err)
	}
	if exhausted.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", exhausted.Attempts)
	}
}

func TestRawArrivals(t *testing.T) {
	body := `[{"lineName":"12","towards":"Oxford Circus"}]`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	raw, err := client.RawArrivals(context.Background(), "490005432S2")
	if err != nil {
		t.Fatalf("RawArrivals() error: %v", err)
	}
	var got, want any
	json.Unmarshal(raw, &got)
	json.Unmarshal([]byte(body), &want)
	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("RawArrivals() = %s, want %s", raw, body)
	}
}

func TestAppKeyQuery(t *testing.T) {
	var gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("app_key")
		w.Write([]byte(`[]`))
	})
	client.SetQuery("app_key", "k123")

	if _, err := client.Arrivals(context.Background(), "490005432S2"); err != nil {
		t.Fatalf("Arrivals() error: %v", err)
	}
	if gotKey != "k123" {
		t.Errorf("app_key = %q, want %q", gotKey, "k123")
	}
}

func TestExpectedArrivalKey(t *testing.T) {
	ts := "2025-04-20T20:00:00Z"
	if got := (Prediction{ExpectedArrival: &ts}).ExpectedArrivalKey(); got != ts {
		t.Errorf("ExpectedArrivalKey() = %q", got)
	}
	if got := (Prediction{}).ExpectedArrivalKey(); got != "" {
		t.Errorf("ExpectedArrivalKey() on empty = %q, want empty", got)
	}
}
