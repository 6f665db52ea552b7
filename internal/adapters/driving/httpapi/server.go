package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may finish.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API server.
type Server struct {
	ports    *Ports
	settings domain.ServerSettings
	metrics  *Metrics
	gatherer prometheus.Gatherer
	handler  http.Handler
}

// NewServer creates a server. Metrics are registered with registry and
// exposed at /metrics.
func NewServer(ports *Ports, settings domain.ServerSettings, registry *prometheus.Registry) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	s := &Server{
		ports:    ports,
		settings: settings,
		metrics:  NewMetrics(registry),
		gatherer: registry,
	}
	s.handler = withCORS(normaliseOrigins(settings.AllowedOrigins), s.routes())
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// routes builds the router. The API is mounted under the root path.
func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	base := router
	if prefix := s.settings.NormalisedRootPath(); prefix != "" {
		base = router.PathPrefix(prefix).Subrouter()
	}
	base.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)

	api := base.PathPrefix("/db_queries").Subrouter()
	api.Use(s.instrument)
	api.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/get_conteudo_trecho", s.handleGetConteudo).Methods(http.MethodGet)
	api.HandleFunc("/get_trecho_para_traduzir", s.handleGetParaTraduzir).Methods(http.MethodGet)
	api.HandleFunc("/registra_video", s.handleRegistraVideo).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/registra_site", s.handleRegistraSite).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, fmt.Errorf("route %s: %w", r.URL.Path, domain.ErrNotFound))
	})
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.settings.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.settings.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	logger.Info("serving API on http://%s%s/db_queries", ln.Addr(), s.settings.NormalisedRootPath())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logger.Info("API server stopped")
	return nil
}
