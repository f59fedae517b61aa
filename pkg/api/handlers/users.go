package handlers

import (
	"errors"
	"net/http"

	"github.com/marmos91/rosterd/pkg/api/middleware"
	"github.com/marmos91/rosterd/pkg/roster/directory"
	"github.com/marmos91/rosterd/pkg/roster/models"
)

// UserHandler handles directory entry API endpoints.
type UserHandler struct {
	directory *directory.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *directory.Service) *UserHandler {
	return &UserHandler{directory: svc}
}

// List handles GET /api/v1/users.
// Supports q, role, sort_by, order, limit, and offset query parameters.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.directory.List(r.Context(), parseListOptions(r))
	if err != nil {
		InternalServerError(w, "Failed to list users")
		return
	}
	WriteJSONOK(w, page)
}

// Get handles GET /api/v1/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.directory.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, "User not found")
			return
		}
		InternalServerError(w, "Failed to fetch user")
		return
	}

	WriteJSONOK(w, user)
}

// CreateUserRequest is the request body for POST /api/v1/users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Create handles POST /api/v1/users (admin only).
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		BadRequest(w, "Name, email, and password are required")
		return
	}

	user, err := h.directory.Create(r.Context(), actorID(r), directory.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		writeDirectoryError(w, err)
		return
	}

	WriteJSONCreated(w, user)
}

// UpdateUserRequest is the request body for PUT /api/v1/users/{id}.
// Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// Update handles PUT /api/v1/users/{id} (admin only).
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := h.directory.Update(r.Context(), actorID(r), id, directory.UpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		writeDirectoryError(w, err)
		return
	}

	WriteJSONOK(w, user)
}

// Delete handles DELETE /api/v1/users/{id} (admin only).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.directory.Delete(r.Context(), actorID(r), id); err != nil {
		writeDirectoryError(w, err)
		return
	}

	WriteNoContent(w)
}

// actorID returns the authenticated user's ID, or nil when the request
// carries no claims.
func actorID(r *http.Request) *uint {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}

// writeDirectoryError maps directory service errors to problem responses.
func writeDirectoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, models.ErrDuplicateEmail):
		Conflict(w, "Email is already in use")
	case errors.Is(err, models.ErrPasswordTooShort),
		errors.Is(err, models.ErrPasswordTooLong):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, models.ErrInvalidUser):
		UnprocessableEntity(w, err.Error())
	default:
		InternalServerError(w, "Operation failed")
	}
}
