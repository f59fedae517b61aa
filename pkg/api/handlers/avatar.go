package handlers

import (
	"errors"
	"net/http"

	"github.com/marmos91/rosterd/pkg/api/middleware"
	"github.com/marmos91/rosterd/pkg/avatar"
	"github.com/marmos91/rosterd/pkg/roster/models"
	"github.com/marmos91/rosterd/pkg/roster/store"
)

// AvatarHandler issues presigned URLs for avatar upload and download.
// It is only mounted when avatar storage is configured.
type AvatarHandler struct {
	service *avatar.Service
	store   store.UserStore
}

// NewAvatarHandler creates a new AvatarHandler.
func NewAvatarHandler(service *avatar.Service, userStore store.UserStore) *AvatarHandler {
	return &AvatarHandler{service: service, store: userStore}
}

// Upload handles POST /api/v1/users/{id}/avatar.
// Users may upload their own avatar; admins may upload for anyone. The
// avatar key is recorded on the registry entry once the URL is issued.
func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}
	if claims.UserID != id && !claims.IsAdmin() {
		Forbidden(w, "Cannot modify another user's avatar")
		return
	}

	if _, err := h.store.GetUserByID(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, "User not found")
			return
		}
		InternalServerError(w, "Failed to fetch user")
		return
	}

	key := avatar.Key(id)
	url, err := h.service.PresignUpload(r.Context(), key)
	if err != nil {
		InternalServerError(w, "Failed to presign upload")
		return
	}

	if err := h.store.SetAvatarKey(r.Context(), id, key); err != nil {
		InternalServerError(w, "Failed to record avatar key")
		return
	}

	WriteJSONOK(w, url)
}

// Download handles GET /api/v1/users/{id}/avatar.
func (h *AvatarHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, "User not found")
			return
		}
		InternalServerError(w, "Failed to fetch user")
		return
	}

	if user.AvatarKey == nil {
		NotFound(w, "User has no avatar")
		return
	}

	url, err := h.service.PresignDownload(r.Context(), *user.AvatarKey)
	if err != nil {
		InternalServerError(w, "Failed to presign download")
		return
	}

	WriteJSONOK(w, url)
}
