package handlers

import (
	"errors"
	"net/http"

	"github.com/marmos91/rosterd/pkg/api/middleware"
	"github.com/marmos91/rosterd/pkg/auth"
	"github.com/marmos91/rosterd/pkg/roster/models"
	"github.com/marmos91/rosterd/pkg/roster/store"
)

// AuthHandler handles authentication-related API endpoints.
type AuthHandler struct {
	service *auth.Service
	store   store.UserStore
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *auth.Service, userStore store.UserStore) *AuthHandler {
	return &AuthHandler{
		service: service,
		store:   userStore,
	}
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
// Returns either a session token or a two-factor challenge with a pending
// token, depending on the account's enrollment.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		BadRequest(w, "Email and password are required")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			Unauthorized(w, "Invalid email or password")
			return
		}
		InternalServerError(w, "Authentication failed")
		return
	}

	WriteJSONOK(w, result)
}

// VerifyRequest is the request body for POST /api/v1/auth/2fa/verify.
// The pending token travels in the Authorization header.
type VerifyRequest struct {
	Code string `json:"code"`
}

// Verify handles POST /api/v1/auth/2fa/verify.
// Exchanges a pending token plus a TOTP code for a session token.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	pendingToken, ok := middleware.ExtractBearerToken(r)
	if !ok {
		Unauthorized(w, "Authorization header required")
		return
	}

	var req VerifyRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Code == "" {
		BadRequest(w, "Verification code is required")
		return
	}

	result, err := h.service.VerifySecondFactor(r.Context(), pendingToken, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCode):
			Unauthorized(w, "Invalid verification code")
		case errors.Is(err, auth.ErrExpiredToken):
			Unauthorized(w, "Pending token has expired, log in again")
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType):
			Unauthorized(w, "Invalid pending token")
		case errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrSecondFactorNotSet):
			Unauthorized(w, "Invalid pending token")
		default:
			InternalServerError(w, "Verification failed")
		}
		return
	}

	WriteJSONOK(w, result)
}

// Enroll handles POST /api/v1/auth/2fa/enroll.
// Generates a fresh TOTP secret for the authenticated user, replacing any
// previous enrollment.
func (h *AuthHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	enrollment, err := h.service.EnrollSecondFactor(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			Unauthorized(w, "User not found")
			return
		}
		InternalServerError(w, "Failed to enroll second factor")
		return
	}

	WriteJSONOK(w, enrollment)
}

// Me handles GET /api/v1/auth/me.
// Returns the current authenticated user's information.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			Unauthorized(w, "User not found")
			return
		}
		InternalServerError(w, "Failed to fetch user")
		return
	}

	WriteJSONOK(w, user.ToPublic())
}
