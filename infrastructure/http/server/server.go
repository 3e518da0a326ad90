package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"chirptalks/auth"
	"chirptalks/contract"
	"chirptalks/observability"
	"chirptalks/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server assembles the REST surface: public reads, token-protected
// writes and the live event stream.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

type Options struct {
	Address           string
	AuthService       services.IAuthService
	FeedService       services.IFeedService
	Tokens            *auth.TokenManager
	Registry          contract.IRegistry
	Health            *observability.HealthMonitor
	SessionBufferSize int
	Log               *slog.Logger
}

func New(opts Options) *Server {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	authHandler := NewAuthHandler(opts.AuthService, opts.Log)
	feedHandler := NewFeedHandler(opts.FeedService, metrics, opts.Log)
	streamHandler := NewStreamHandler(opts.Registry, metrics, opts.SessionBufferSize, opts.Log)

	router := mux.NewRouter()
	router.Use(instrument(opts.Log, metrics))

	router.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	router.HandleFunc("/messages", feedHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/messages/search", feedHandler.Search).Methods(http.MethodGet)
	router.HandleFunc("/events", streamHandler.Stream).Methods(http.MethodGet)

	protected := router.NewRoute().Subrouter()
	protected.Use(auth.Middleware(opts.Tokens))
	protected.HandleFunc("/messages", feedHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id}/like", feedHandler.ToggleLike).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id}/comment", feedHandler.AddComment).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id}", feedHandler.Edit).Methods(http.MethodPut)
	protected.HandleFunc("/messages/{id}", feedHandler.Delete).Methods(http.MethodDelete)

	router.HandleFunc("/health", healthHandler(opts.Health, opts.Registry, opts.Log)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: opts.Log,
	}
}

func healthHandler(health *observability.HealthMonitor, registry contract.IRegistry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, health.Report(len(registry.Sinks())))
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
// Streaming sessions watch their own request context and exit on their
// own when the listener closes.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", "address", s.httpServer.Addr, "at", time.Now().UTC())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("Shutting down HTTP server...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Handler exposes the assembled router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
