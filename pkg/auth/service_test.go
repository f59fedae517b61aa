package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/marmos91/rosterd/pkg/roster/models"
	"github.com/marmos91/rosterd/pkg/roster/store"
)

func newTestService(t *testing.T) (*Service, *store.GORMStore) {
	t.Helper()

	s, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	jwtService, err := NewJWTService(JWTConfig{Secret: testSecret})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}

	return NewService(s, jwtService, "rosterd-test"), s
}

func createAccount(t *testing.T, s *store.GORMStore, email, password string) *models.User {
	t.Helper()

	hash, err := models.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Name: "Alice", Email: email, Role: "user", PasswordHash: hash}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestLoginWithoutSecondFactor(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	createAccount(t, s, "alice@example.com", "secret-password")

	result, err := svc.Login(ctx, "alice@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if result.RequiresTwoFactor {
		t.Error("expected direct grant for account without second factor")
	}
	if result.Session == nil || result.Session.Token == "" {
		t.Fatal("expected session token")
	}
	if result.User == nil || result.User.Email != "alice@example.com" {
		t.Errorf("expected public user in result, got %+v", result.User)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	createAccount(t, s, "alice@example.com", "secret-password")

	_, err := svc.Login(ctx, "alice@example.com", "wrong")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	_, err = svc.Login(ctx, "nobody@example.com", "secret-password")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestTwoFactorLoginFlow(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	user := createAccount(t, s, "alice@example.com", "secret-password")

	enrollment, err := svc.EnrollSecondFactor(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to enroll: %v", err)
	}

	// With a second factor enrolled, login yields only a pending token.
	result, err := svc.Login(ctx, "alice@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !result.RequiresTwoFactor || result.PendingToken == "" {
		t.Fatalf("expected two-factor challenge, got %+v", result)
	}
	if result.Session != nil {
		t.Error("expected no session before verification")
	}

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	if err != nil {
		t.Fatalf("failed to generate code: %v", err)
	}

	verified, err := svc.VerifySecondFactor(ctx, result.PendingToken, code)
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if verified.Session == nil {
		t.Fatal("expected session after verification")
	}

	jwtService, _ := NewJWTService(JWTConfig{Secret: testSecret})
	claims, err := jwtService.ValidateSessionToken(verified.Session.Token)
	if err != nil {
		t.Fatalf("failed to validate issued session: %v", err)
	}
	if !claims.SecondFactor {
		t.Error("expected second factor flag on verified session")
	}
}

func TestVerifySecondFactorRejectsBadCode(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	user := createAccount(t, s, "alice@example.com", "secret-password")
	if _, err := svc.EnrollSecondFactor(ctx, user.ID); err != nil {
		t.Fatalf("failed to enroll: %v", err)
	}

	result, err := svc.Login(ctx, "alice@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err = svc.VerifySecondFactor(ctx, result.PendingToken, "000000")
	if !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}

func TestVerifySecondFactorRejectsSessionToken(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	createAccount(t, s, "alice@example.com", "secret-password")

	result, err := svc.Login(ctx, "alice@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A session token must not pass for the pending stage.
	_, err = svc.VerifySecondFactor(ctx, result.Session.Token, "000000")
	if !errors.Is(err, ErrInvalidTokenType) {
		t.Errorf("expected ErrInvalidTokenType, got %v", err)
	}
}

func TestEnrollReplacesSecret(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	user := createAccount(t, s, "alice@example.com", "secret-password")

	first, err := svc.EnrollSecondFactor(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to enroll: %v", err)
	}
	second, err := svc.EnrollSecondFactor(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to re-enroll: %v", err)
	}
	if first.Secret == second.Secret {
		t.Error("expected re-enrollment to generate a new secret")
	}

	stored, err := s.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if stored.TwoFactorSecret != second.Secret {
		t.Error("expected the latest secret to be stored")
	}
}
