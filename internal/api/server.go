package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"episodecheck/internal/config"
	"episodecheck/internal/logging"
	"episodecheck/internal/querycache"
	"episodecheck/internal/seriescheck"
	"episodecheck/internal/services"
)

// Checker is the part of seriescheck.Checker the server needs.
type Checker interface {
	Check(ctx context.Context, item string) (*seriescheck.Result, error)
	AllSeries(ctx context.Context) ([]seriescheck.Series, error)
	Search(ctx context.Context, text string) ([]seriescheck.SearchHit, error)
}

// Server exposes a Checker over HTTP.
type Server struct {
	bind    string
	token   string
	status  Status
	checker Checker
	logger  *slog.Logger
	started time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	server *http.Server
}

// New builds a server for cfg. Nothing listens until Serve or
// ListenAndServe is called.
func New(cfg *config.Config, checker Checker, logger *slog.Logger) *Server {
	started := time.Now()
	return &Server{
		bind:    cfg.API.Bind,
		token:   cfg.API.Token,
		checker: checker,
		logger:  logging.NewComponentLogger(logger, "api-server"),
		started: started,
		rng:     rand.New(rand.NewPCG(uint64(started.UnixNano()), 0)),
		status: Status{
			StartedAt:     started.UTC().Format(dateTimeFormat),
			Endpoint:      cfg.SPARQL.Endpoint,
			CacheBackend:  cfg.Cache.Backend,
			LabelLanguage: cfg.SPARQL.LabelLanguage,
		},
	}
}

// Handler returns the routed, authenticated handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/series", s.handleSeriesList)
	mux.HandleFunc("GET /api/series/{item}", s.handleSeries)
	mux.HandleFunc("GET /api/series/{item}/random", s.handleRandom)
	return authMiddleware(s.token, requestID(mux))
}

// ListenAndServe listens on the configured bind address and serves until
// ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()
	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		<-errCh
		s.logger.Info("api server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.status
	status.UptimeSeconds = int64(time.Since(s.started).Seconds())
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	result, ok := s.check(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, FromResult(result))
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	result, ok := s.check(w, r)
	if !ok {
		return
	}
	s.rngMu.Lock()
	ep, found := seriescheck.Random(result, s.rng)
	s.rngMu.Unlock()
	if !found {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no episodes found for %s", result.SeriesItem))
		return
	}
	s.writeJSON(w, http.StatusOK, RandomEpisodeResponse{
		SeriesItem: result.SeriesItem,
		SeriesName: result.SeriesName,
		Episode:    FromEpisode(ep),
	})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) (*seriescheck.Result, bool) {
	ctx := r.Context()
	if purgeRequested(r) {
		ctx = querycache.WithPurge(ctx)
	}
	result, err := s.checker.Check(ctx, r.PathValue("item"))
	if err != nil {
		s.fail(w, r, "series check failed", err)
		return nil, false
	}
	return result, true
}

func (s *Server) handleSeriesList(w http.ResponseWriter, r *http.Request) {
	if text := strings.TrimSpace(r.URL.Query().Get("q")); text != "" {
		hits, err := s.checker.Search(r.Context(), text)
		if err != nil {
			s.fail(w, r, "series search failed", err)
			return
		}
		s.writeJSON(w, http.StatusOK, SearchResponse{Query: text, Hits: FromSearchHits(hits)})
		return
	}
	series, err := s.checker.AllSeries(r.Context())
	if err != nil {
		s.fail(w, r, "series listing failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, SeriesListResponse{Series: FromSeries(series)})
}

func purgeRequested(r *http.Request) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("purge"))) {
	case "yes", "1", "true":
		return true
	default:
		return false
	}
}

// fail writes err with its classified status. Client errors are returned
// as-is; server-side failures are logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := services.HTTPStatus(err)
	message := err.Error()
	var notSeries *seriescheck.NotSeriesError
	if errors.As(err, &notSeries) {
		message = notSeries.Error()
	}
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger), msg, "api_request_failed",
			logging.String("path", r.URL.Path),
			logging.Int("status", status),
			logging.Error(err))
	}
	s.writeError(w, status, message)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

// requestID tags each request context with a correlation id, reusing the
// caller's X-Request-ID when present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), id)))
	})
}
