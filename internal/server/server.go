package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trebuchet-org/treb-relay/internal/domain/config"
	mw "github.com/trebuchet-org/treb-relay/internal/server/middleware"
	"github.com/trebuchet-org/treb-relay/internal/signing"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// Server is the HTTP front door of the relay
type Server struct {
	router chi.Router
	log    *slog.Logger
	config *config.RuntimeConfig
	signer *signing.Signer

	trigger *usecase.TriggerDeployment
	latest  *usecase.ShowLatestDeployment
}

// NewServer wires routes for the health probe and the signed deploy and status endpoints
func NewServer(cfg *config.RuntimeConfig, log *slog.Logger, trigger *usecase.TriggerDeployment, latest *usecase.ShowLatestDeployment) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     log.With("component", "RelayServer"),
		config:  cfg,
		signer:  signing.NewSigner(cfg.HMACSecret),
		trigger: trigger,
		latest:  latest,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Group(func(r chi.Router) {
		r.Use(mw.Signature(s.signer, s.config.SignatureHeader, s.config.MaxBodyBytes, s.log))

		r.Post("/deploy", s.handleDeploy)
		r.Get("/status", s.handleStatus)
	})
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured port until ctx is cancelled, then shuts down gracefully.
// In-flight deployments get the configured shutdown timeout to finish.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		s.log.Info("Relayer listening", "addr", ln.Addr().String(), "network", s.config.Network.Name)
		errorCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("graceful shutdown failed", "error", err)
			return err
		}
		s.log.Info("relay stopped")
		return nil
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
