package apiclient

import (
	"time"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionToken represents an issued session token.
type SessionToken struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresIn int64     `json:"expires_in"` // seconds
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiresInDuration returns ExpiresIn as a time.Duration.
func (t *SessionToken) ExpiresInDuration() time.Duration {
	return time.Duration(t.ExpiresIn) * time.Second
}

// LoginResponse is the outcome of a password check. When the account has a
// second factor enrolled, only PendingToken is set and the login must be
// completed with VerifySecondFactor.
type LoginResponse struct {
	RequiresTwoFactor bool          `json:"requires_two_factor"`
	PendingToken      string        `json:"pending_token,omitempty"`
	Session           *SessionToken `json:"session,omitempty"`
	User              *User         `json:"user,omitempty"`
}

// SessionResult is the response of a completed second-factor verification.
type SessionResult struct {
	Session *SessionToken `json:"session,omitempty"`
	User    *User         `json:"user,omitempty"`
}

// Enrollment is the second-factor enrollment material.
type Enrollment struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
	QRCode          string `json:"qr_code"`
}

// Login authenticates with the server.
func (c *Client) Login(email, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var resp LoginResponse
	if err := c.post("/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// VerifySecondFactor exchanges a pending token and TOTP code for a session.
func (c *Client) VerifySecondFactor(pendingToken, code string) (*SessionResult, error) {
	req := struct {
		Code string `json:"code"`
	}{Code: code}

	var resp SessionResult
	verifyClient := c.WithToken(pendingToken)
	if err := verifyClient.post("/api/v1/auth/2fa/verify", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// EnrollSecondFactor generates a fresh TOTP enrollment for the current user.
func (c *Client) EnrollSecondFactor() (*Enrollment, error) {
	var resp Enrollment
	if err := c.post("/api/v1/auth/2fa/enroll", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCurrentUser returns the currently authenticated user.
func (c *Client) GetCurrentUser() (*User, error) {
	var user User
	if err := c.get("/api/v1/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
