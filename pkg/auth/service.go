// Package auth implements the login state machine: password verification,
// an optional TOTP second factor, and signed session tokens.
package auth

import (
	"context"
	"fmt"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/roster/models"
	"github.com/marmos91/rosterd/pkg/roster/store"
)

// Service drives authentication against the registry store.
type Service struct {
	store      store.UserStore
	jwt        *JWTService
	totpIssuer string
}

// NewService creates an authentication service. totpIssuer is the issuer
// label shown in authenticator apps.
func NewService(userStore store.UserStore, jwtService *JWTService, totpIssuer string) *Service {
	if totpIssuer == "" {
		totpIssuer = "rosterd"
	}
	return &Service{
		store:      userStore,
		jwt:        jwtService,
		totpIssuer: totpIssuer,
	}
}

// LoginResult is the outcome of a password check. Exactly one of Session or
// PendingToken is set: accounts without an enrolled second factor get a
// session immediately, enrolled accounts must verify a code first.
type LoginResult struct {
	RequiresTwoFactor bool               `json:"requires_two_factor"`
	PendingToken      string             `json:"pending_token,omitempty"`
	Session           *SessionToken      `json:"session,omitempty"`
	User              *models.PublicUser `json:"user,omitempty"`
}

// Login verifies an email/password pair. Unknown emails and wrong passwords
// are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.store.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if user.HasSecondFactor() {
		pending, err := s.jwt.IssuePendingToken(user)
		if err != nil {
			return nil, fmt.Errorf("failed to issue pending token: %w", err)
		}

		logger.Debug("login requires second factor", "user_id", user.ID)
		return &LoginResult{
			RequiresTwoFactor: true,
			PendingToken:      pending,
		}, nil
	}

	session, err := s.jwt.IssueSessionToken(user, false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	logger.Debug("login granted", "user_id", user.ID)
	return &LoginResult{
		Session: session,
		User:    user.ToPublic(),
	}, nil
}

// VerifySecondFactor exchanges a pending token plus a valid TOTP code for a
// full session token.
func (s *Service) VerifySecondFactor(ctx context.Context, pendingToken, code string) (*LoginResult, error) {
	claims, err := s.jwt.ValidatePendingToken(pendingToken)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if !user.HasSecondFactor() {
		return nil, models.ErrSecondFactorNotSet
	}

	if err := VerifyCode(code, user.TwoFactorSecret); err != nil {
		logger.Debug("second factor rejected", "user_id", user.ID)
		return nil, err
	}

	session, err := s.jwt.IssueSessionToken(user, true)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	logger.Debug("second factor verified", "user_id", user.ID)
	return &LoginResult{
		Session: session,
		User:    user.ToPublic(),
	}, nil
}

// EnrollSecondFactor generates and stores a fresh TOTP secret for the user,
// replacing any previous one. The caller must already hold a session token.
func (s *Service) EnrollSecondFactor(ctx context.Context, userID uint) (*Enrollment, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollment, err := GenerateEnrollment(s.totpIssuer, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetTwoFactorSecret(ctx, user.ID, enrollment.Secret); err != nil {
		return nil, fmt.Errorf("failed to store second factor secret: %w", err)
	}

	logger.Info("second factor enrolled", "user_id", user.ID)
	return enrollment, nil
}
