package models

import (
	"errors"
	"testing"
)

func TestUserRoleIsValid(t *testing.T) {
	if !RoleUser.IsValid() {
		t.Error("expected 'user' to be valid")
	}
	if !RoleAdmin.IsValid() {
		t.Error("expected 'admin' to be valid")
	}
	if UserRole("superuser").IsValid() {
		t.Error("expected 'superuser' to be invalid")
	}
}

func TestUserValidate(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		u := &User{Name: "Alice", Email: "alice@example.com", Role: "user"}
		if err := u.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		u := &User{Name: "Alice"}
		if err := u.Validate(); err == nil {
			t.Error("expected error for missing email")
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		u := &User{Name: "Alice", Email: "alice@example.com", Role: "root"}
		if err := u.Validate(); err == nil {
			t.Error("expected error for invalid role")
		}
	})
}

func TestToPublicExcludesCredentials(t *testing.T) {
	u := &User{
		ID:              7,
		Name:            "Alice",
		Email:           "alice@example.com",
		Role:            "admin",
		PasswordHash:    "$2a$10$secret",
		TwoFactorSecret: "JBSWY3DPEHPK3PXP",
	}

	pub := u.ToPublic()
	if pub.ID != 7 || pub.Email != "alice@example.com" {
		t.Errorf("unexpected public view: %+v", pub)
	}
	if !pub.TwoFactorEnabled {
		t.Error("expected TwoFactorEnabled to be true")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if !VerifyPassword("correct horse battery", hash) {
		t.Error("expected password to verify")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidatePassword(string(long)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}

	if err := ValidatePassword("long enough"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestPublicUsersNeverNil(t *testing.T) {
	out := PublicUsers(nil)
	if out == nil {
		t.Error("expected empty slice, got nil")
	}
}
