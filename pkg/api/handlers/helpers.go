package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/rosterd/pkg/roster/store"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// parseIDParam parses the {id} URL parameter.
// Returns 0 and false after writing a 400 response if the parameter is not a
// positive integer.
func parseIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		BadRequest(w, "Invalid id parameter")
		return 0, false
	}
	return uint(id), true
}

// parseListOptions builds store.ListOptions from query parameters.
// Unknown or malformed values fall back to defaults rather than erroring.
func parseListOptions(r *http.Request) store.ListOptions {
	q := r.URL.Query()

	opts := store.ListOptions{
		Query:      q.Get("q"),
		Role:       q.Get("role"),
		SortBy:     q.Get("sort_by"),
		Descending: q.Get("order") == "desc",
	}
	opts.Limit, opts.Offset = parsePagination(r)
	return opts
}

// parsePagination parses limit and offset query parameters.
func parsePagination(r *http.Request) (limit, offset int) {
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		offset = v
	}
	return limit, offset
}
