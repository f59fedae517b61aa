package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/api/handlers"
	apiMiddleware "github.com/marmos91/rosterd/pkg/api/middleware"
	"github.com/marmos91/rosterd/pkg/auth"
	"github.com/marmos91/rosterd/pkg/avatar"
	"github.com/marmos91/rosterd/pkg/roster/directory"
	"github.com/marmos91/rosterd/pkg/roster/store"
	"github.com/marmos91/rosterd/pkg/roster/sync"
)

// RouterDeps carries the services the router wires into handlers.
//
// Avatar may be nil, in which case the avatar routes are not mounted.
type RouterDeps struct {
	Store      store.Store
	Directory  *directory.Service
	Auth       *auth.Service
	JWTService *auth.JWTService
	Hub        *sync.Hub
	Avatar     *avatar.Service
}

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - POST /api/v1/auth/login - Password authentication
//   - POST /api/v1/auth/2fa/verify - Second-factor verification
//   - POST /api/v1/auth/2fa/enroll - Second-factor enrollment
//   - GET /api/v1/auth/me - Current user info
//   - GET /api/v1/users - Directory listing
//   - GET /api/v1/users/{id} - Single entry
//   - POST/PUT/DELETE /api/v1/users/* - Entry management (admin only)
//   - POST/GET /api/v1/users/{id}/avatar - Presigned avatar URLs (if configured)
//   - GET /api/v1/events - Mutation log (admin only)
//   - GET /api/v1/flags - Monitoring flags (admin only)
//   - GET /api/v1/sync - WebSocket sync feed
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	// The WebSocket sync route sits outside the timeout middleware: the
	// upgraded connection is long-lived and must not be cut off after 30s.
	syncHandler := handlers.NewSyncHandler(deps.Hub, deps.JWTService)
	r.Get("/api/v1/sync", syncHandler.Connect)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		// Health routes - unauthenticated
		healthHandler := handlers.NewHealthHandler(deps.Store)
		r.Route("/health", func(r chi.Router) {
			r.Get("/", healthHandler.Liveness)
			r.Get("/ready", healthHandler.Readiness)
		})

		// Root redirect to health for convenience
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
		})

		authHandler := handlers.NewAuthHandler(deps.Auth, deps.Store)
		userHandler := handlers.NewUserHandler(deps.Directory)

		// API v1 routes
		r.Route("/api/v1", func(r chi.Router) {
			// Auth routes
			r.Route("/auth", func(r chi.Router) {
				// Public endpoints. Verify authenticates via the pending
				// token in the Authorization header, not session middleware.
				r.Post("/login", authHandler.Login)
				r.Post("/2fa/verify", authHandler.Verify)

				// Session-authenticated endpoints
				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.SessionAuth(deps.JWTService))
					r.Post("/2fa/enroll", authHandler.Enroll)
					r.Get("/me", authHandler.Me)
				})
			})

			// Protected routes - require a full session token
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.SessionAuth(deps.JWTService))

				// Directory
				r.Route("/users", func(r chi.Router) {
					r.Get("/", userHandler.List)
					r.Get("/{id}", userHandler.Get)

					// Avatar routes - handler does its own self-or-admin check
					if deps.Avatar != nil {
						avatarHandler := handlers.NewAvatarHandler(deps.Avatar, deps.Store)
						r.Post("/{id}/avatar", avatarHandler.Upload)
						r.Get("/{id}/avatar", avatarHandler.Download)
					}

					// Mutations are admin-only
					r.Group(func(r chi.Router) {
						r.Use(apiMiddleware.RequireAdmin())

						r.Post("/", userHandler.Create)
						r.Put("/{id}", userHandler.Update)
						r.Delete("/{id}", userHandler.Delete)
					})
				})

				// Audit surfaces (admin only)
				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin())

					eventHandler := handlers.NewEventHandler(deps.Store)
					flagHandler := handlers.NewFlagHandler(deps.Store)
					r.Get("/events", eventHandler.List)
					r.Get("/flags", flagHandler.List)
				})
			})
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
