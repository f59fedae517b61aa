package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/api/middleware"
	"github.com/marmos91/rosterd/pkg/auth"
	"github.com/marmos91/rosterd/pkg/roster/sync"
)

// SyncHandler upgrades HTTP connections to WebSocket observers.
type SyncHandler struct {
	hub        *sync.Hub
	jwtService *auth.JWTService
	upgrader   websocket.Upgrader
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(hub *sync.Hub, jwtService *auth.JWTService) *SyncHandler {
	return &SyncHandler{
		hub:        hub,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Token auth covers origin concerns; browsers cannot forge
			// the Authorization flow for cross-site WebSocket upgrades.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Connect handles GET /api/v1/sync.
//
// Browsers cannot set headers on WebSocket upgrades, so the session token is
// accepted from the "token" query parameter as well as the Authorization
// header. The observer receives INITIAL_DATA immediately after the upgrade.
func (h *SyncHandler) Connect(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		var ok bool
		token, ok = middleware.ExtractBearerToken(r)
		if !ok {
			Unauthorized(w, "Session token required")
			return
		}
	}

	claims, err := h.jwtService.ValidateSessionToken(token)
	if err != nil {
		Unauthorized(w, "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response.
		logger.Debug("websocket upgrade failed", "error", err.Error())
		return
	}

	observer := sync.NewObserver(conn)
	if err := h.hub.Register(r.Context(), observer); err != nil {
		logger.Error("failed to register observer",
			"observer_id", observer.ID.String(), "error", err.Error())
		_ = conn.Close()
		return
	}

	logger.Debug("sync observer authenticated",
		"observer_id", observer.ID.String(), "user_id", claims.UserID)

	go observer.WritePump(h.hub)
	observer.ReadPump(h.hub)
}
