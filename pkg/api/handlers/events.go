package handlers

import (
	"net/http"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/roster/store"
)

// EventHandler serves the append-only mutation log to administrators.
type EventHandler struct {
	store store.MutationStore
}

// NewEventHandler creates a new mutation log handler.
func NewEventHandler(mutationStore store.MutationStore) *EventHandler {
	return &EventHandler{store: mutationStore}
}

// List handles GET /api/v1/events - list mutation events, newest first.
//
// Query parameters:
//   - limit: maximum number of events to return (default 10)
//   - offset: number of events to skip
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	events, err := h.store.ListMutations(r.Context(), limit, offset)
	if err != nil {
		logger.ErrorCtx(r.Context(), "failed to list mutation events", "error", err.Error())
		InternalServerError(w, "Failed to list events")
		return
	}

	WriteJSONOK(w, map[string]any{
		"events": events,
		"limit":  limit,
		"offset": offset,
	})
}
