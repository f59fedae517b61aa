package auth

import "github.com/golang-jwt/jwt/v5"

// TokenType distinguishes the two token stages of the login flow.
type TokenType string

const (
	// TokenTypePending is issued after a correct password when the account
	// has a second factor enrolled. It authorizes only the verify endpoint.
	TokenTypePending TokenType = "pending"

	// TokenTypeSession is a fully authenticated session token.
	TokenTypeSession TokenType = "session"
)

// Claims are the JWT claims carried by rosterd tokens.
type Claims struct {
	jwt.RegisteredClaims

	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`

	// SecondFactor reports whether the session was verified with a TOTP
	// code. False for pending tokens and for accounts without enrollment.
	SecondFactor bool `json:"tfa"`
}

// IsPendingToken returns true if this is a pending (pre-2FA) token.
func (c *Claims) IsPendingToken() bool {
	return c.TokenType == TokenTypePending
}

// IsSessionToken returns true if this is a full session token.
func (c *Claims) IsSessionToken() bool {
	return c.TokenType == TokenTypeSession
}

// IsAdmin returns true if the token carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}
