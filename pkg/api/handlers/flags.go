package handlers

import (
	"net/http"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/roster/store"
)

// FlagHandler serves monitoring flags raised by the anomaly detector.
type FlagHandler struct {
	store store.FlagStore
}

// NewFlagHandler creates a new monitoring flag handler.
func NewFlagHandler(flagStore store.FlagStore) *FlagHandler {
	return &FlagHandler{store: flagStore}
}

// List handles GET /api/v1/flags - list monitoring flags, newest first.
//
// Query parameters:
//   - limit: maximum number of flags to return (default 10)
//   - offset: number of flags to skip
func (h *FlagHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	flags, err := h.store.ListFlags(r.Context(), limit, offset)
	if err != nil {
		logger.ErrorCtx(r.Context(), "failed to list monitoring flags", "error", err.Error())
		InternalServerError(w, "Failed to list flags")
		return
	}

	WriteJSONOK(w, map[string]any{
		"flags":  flags,
		"limit":  limit,
		"offset": offset,
	})
}
