package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/auth"
	"github.com/marmos91/rosterd/pkg/avatar"
	"github.com/marmos91/rosterd/pkg/metrics"
	"github.com/marmos91/rosterd/pkg/roster/directory"
	"github.com/marmos91/rosterd/pkg/roster/store"
	rostersync "github.com/marmos91/rosterd/pkg/roster/sync"
)

// Server provides the rosterd HTTP server.
//
// It serves the REST API, the health probes and the WebSocket sync feed.
// The server supports graceful shutdown with configurable timeout.
type Server struct {
	server       *http.Server
	jwtService   *auth.JWTService
	config       APIConfig
	shutdownOnce sync.Once
}

// ServerDeps carries the services the server wires into the router.
//
// Avatar may be nil when object storage is not configured; the avatar
// routes are then not mounted.
type ServerDeps struct {
	Store  store.Store
	Hub    *rostersync.Hub
	Avatar *avatar.Service
}

// NewServer creates a new API HTTP server.
//
// The server is created in a stopped state. Call Start() to begin serving
// requests.
//
// The JWT service is created internally from the config. The JWT secret must
// be configured via config.JWT.Secret or the ROSTERD_API_SECRET environment
// variable.
func NewServer(config APIConfig, deps ServerDeps) (*Server, error) {
	config.applyDefaults()

	// Get JWT secret from config (prefers env var)
	jwtSecret := config.GetJWTSecret()
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters; set via %s env var or config", EnvAPISecret)
	}

	jwtConfig := auth.JWTConfig{
		Secret:               jwtSecret,
		PendingTokenDuration: config.JWT.PendingTokenDuration,
		SessionTokenDuration: config.JWT.SessionTokenDuration,
	}
	jwtService, err := auth.NewJWTService(jwtConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	authService := auth.NewService(deps.Store, jwtService, "")
	directoryService := directory.NewService(deps.Store, deps.Hub)
	directoryService.SetMetrics(metrics.NewDirectoryMetrics())

	router := NewRouter(RouterDeps{
		Store:      deps.Store,
		Directory:  directoryService,
		Auth:       authService,
		JWTService: jwtService,
		Hub:        deps.Hub,
		Avatar:     deps.Avatar,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		server:     server,
		jwtService: jwtService,
		config:     config,
	}, nil
}

// Start starts the API HTTP server and blocks until the context is cancelled
// or an error occurs.
//
// When the context is cancelled, Start initiates graceful shutdown and returns.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "port", s.config.Port)
		logger.Debug("API endpoints available",
			"health", fmt.Sprintf("http://localhost:%d/health", s.config.Port),
			"api", fmt.Sprintf("http://localhost:%d/api/v1", s.config.Port),
			"sync", fmt.Sprintf("ws://localhost:%d/api/v1/sync", s.config.Port),
		)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
				// Context was cancelled, error is not needed
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("API server shutdown signal received")
		// Don't use the cancelled ctx as it would cause immediate shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	}
}

// Stop initiates graceful shutdown of the API server.
//
// Stop is safe to call multiple times and safe to call concurrently with Start().
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("API server shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("API server shutdown error: %w", err)
			logger.Error("API server shutdown error", "error", err)
		} else {
			logger.Info("API server stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server is listening on.
func (s *Server) Port() int {
	return s.config.Port
}
