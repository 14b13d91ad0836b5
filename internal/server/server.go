// Package server exposes stop boards over HTTP.
//
// Routes:
//
//	GET /arrivals          boards for the configured stops (JSON, or text
//	                       with ?format=text); ?line= and ?destination= filter
//	GET /stoppoint/{id}    the raw TfL arrivals for one stop
//	GET /healthz           liveness
//
// The configuration is read again on every /arrivals request.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/logger"

	bserrors "github.com/matzehuels/busstop/pkg/errors"
	"github.com/matzehuels/busstop/pkg/integrations"
	"github.com/matzehuels/busstop/pkg/pipeline"
	"github.com/matzehuels/busstop/pkg/render"
)

// ShutdownTimeout bounds graceful shutdown after the context is cancelled.
const ShutdownTimeout = 5 * time.Second

// ArrivalsSource returns the raw Arrivals document for a stop.
type ArrivalsSource interface {
	RawArrivals(ctx context.Context, stopID string) (json.RawMessage, error)
}

// Server serves boards produced by a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	source ArrivalsSource
	logger *log.Logger
	router chi.Router
}

// New creates a Server. Request lines are logged through logger at info
// level.
func New(runner *pipeline.Runner, source ArrivalsSource, l *log.Logger) *Server {
	if l == nil {
		l = log.Default()
	}
	s := &Server{runner: runner, source: source, logger: l}

	access := logger.New(logger.Options{
		Prefix:             "busstop",
		Out:                l.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}).Writer(),
		OutputFlags:        -1,
		IgnoredRequestURIs: []string{"/healthz"},
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(access.Handler)
	r.Get("/arrivals", s.handleArrivals)
	r.Get("/stoppoint/{id}", s.handleStopPoint)
	r.Get("/healthz", s.handleHealth)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleArrivals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = render.DefaultFormat
	}
	if err := render.ValidateFormat(format); err != nil {
		writeError(w, http.StatusBadRequest, bserrors.UserMessage(err))
		return
	}

	filter := render.Filter{Line: q.Get("line"), Destination: q.Get("destination")}
	results := filter.Apply(s.runner.RunAll(r.Context()))

	if format == render.FormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	if err := render.Write(w, format, results); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) handleStopPoint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := bserrors.ValidateStopID(id); err != nil {
		writeError(w, http.StatusBadRequest, bserrors.UserMessage(err))
		return
	}

	body, err := s.source.RawArrivals(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusOK, integrations.FailurePayload(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
