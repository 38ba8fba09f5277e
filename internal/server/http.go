package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/jumble/internal/config"
	"github.com/gokatarajesh/jumble/internal/logging"
	"github.com/gokatarajesh/jumble/internal/round"
	httperrors "github.com/gokatarajesh/jumble/pkg/http/errors"
)

// Pinger is a dependency checked by /v1/ping.
type Pinger func(ctx context.Context) error

// NewHTTPServer wires health, metrics and round routes for the play API.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, rounds *round.HTTPHandlers, deps ...Pinger) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(logger, rounds, deps...),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// NewHandler builds the routed, logged handler served by NewHTTPServer.
func NewHandler(logger zerolog.Logger, rounds *round.HTTPHandlers, deps ...Pinger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, ping := range deps {
			if err := ping(ctx); err != nil {
				logging.FromContext(ctx).Error().Err(err).Msg("dependency ping failed")
				httperrors.Respond(w, httperrors.ErrCodeServiceUnavailable, "upstream error")
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if rounds != nil {
		rounds.Register(mux)
	}

	return withRequestLogging(mux, logger)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withRequestLogging tags each request with an id, stores the logger in the
// request context and logs the outcome.
func withRequestLogging(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		reqLogger := logger.With().Str("request_id", reqID).Logger()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))

		reqLogger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
