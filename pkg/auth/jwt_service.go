package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marmos91/rosterd/pkg/roster/models"
)

// Common errors for JWT operations.
var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrInvalidTokenType    = errors.New("invalid token type")
	ErrTokenSigningFailed  = errors.New("failed to sign token")
	ErrInvalidSecretLength = errors.New("JWT secret must be at least 32 characters")
)

// JWTConfig holds configuration for JWT token generation.
type JWTConfig struct {
	// Secret is the HMAC signing key. Must be at least 32 characters.
	Secret string

	// Issuer is the token issuer claim. Default: "rosterd"
	Issuer string

	// PendingTokenDuration is the lifetime of pending (pre-2FA) tokens.
	// Default: 5 minutes.
	PendingTokenDuration time.Duration

	// SessionTokenDuration is the lifetime of session tokens. Default: 1 hour.
	SessionTokenDuration time.Duration
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	config JWTConfig
}

// SessionToken is the response payload for an issued session token.
type SessionToken struct {
	// Token is the signed JWT.
	Token string `json:"token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`

	// ExpiresAt is the token expiration time.
	ExpiresAt time.Time `json:"expires_at"`
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(config JWTConfig) (*JWTService, error) {
	if len(config.Secret) < 32 {
		return nil, ErrInvalidSecretLength
	}

	// Apply defaults
	if config.Issuer == "" {
		config.Issuer = "rosterd"
	}
	if config.PendingTokenDuration == 0 {
		config.PendingTokenDuration = 5 * time.Minute
	}
	if config.SessionTokenDuration == 0 {
		config.SessionTokenDuration = time.Hour
	}

	return &JWTService{config: config}, nil
}

// IssuePendingToken creates a short-lived token proving the password step
// succeeded. It authorizes only the second-factor verify endpoint.
func (s *JWTService) IssuePendingToken(user *models.User) (string, error) {
	return s.generateToken(user, TokenTypePending, false, s.config.PendingTokenDuration)
}

// IssueSessionToken creates a full session token. secondFactor records
// whether the session was established with a TOTP code.
func (s *JWTService) IssueSessionToken(user *models.User, secondFactor bool) (*SessionToken, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.SessionTokenDuration)

	token, err := s.generateToken(user, TokenTypeSession, secondFactor, s.config.SessionTokenDuration)
	if err != nil {
		return nil, err
	}

	return &SessionToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.config.SessionTokenDuration.Seconds()),
		ExpiresAt: expiresAt,
	}, nil
}

// generateToken creates a single JWT token.
func (s *JWTService) generateToken(user *models.User, tokenType TokenType, secondFactor bool, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenType:    tokenType,
		SecondFactor: secondFactor,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", ErrTokenSigningFailed
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the claims.
// Returns an error if the token is invalid or expired.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateSessionToken validates a token and ensures it's a session token.
func (s *JWTService) ValidateSessionToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if !claims.IsSessionToken() {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}

// ValidatePendingToken validates a token and ensures it's a pending token.
func (s *JWTService) ValidatePendingToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if !claims.IsPendingToken() {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}

// GetSessionTokenDuration returns the configured session token duration.
func (s *JWTService) GetSessionTokenDuration() time.Duration {
	return s.config.SessionTokenDuration
}
