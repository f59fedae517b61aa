package models

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the default cost parameter for bcrypt hashing.
// Cost 10 provides a good balance between security and performance.
const DefaultBcryptCost = 10

// Password length constraints.
const (
	// MinPasswordLength is the minimum required password length.
	MinPasswordLength = 8

	// MaxPasswordLength is the maximum allowed password length.
	// bcrypt silently truncates at 72 bytes, so we enforce this limit.
	MaxPasswordLength = 72
)

// Password validation errors.
var (
	// ErrPasswordTooShort is returned when a password is too short.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrPasswordTooLong is returned when a password is too long.
	// bcrypt has a maximum input length of 72 bytes.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// HashPassword creates a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultBcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword checks if a password matches a bcrypt hash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword checks if a password meets the requirements.
// Requirements: at least 8 characters, at most 72 characters (bcrypt limit).
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Admin bootstrap configuration.
const (
	// AdminEmail is the email of the bootstrap administrator account.
	AdminEmail = "admin@rosterd.local"

	// AdminName is the display name of the bootstrap administrator account.
	AdminName = "Administrator"

	// EnvAdminInitialPassword optionally provides the bootstrap admin
	// password. When unset, a random password is generated and printed once.
	EnvAdminInitialPassword = "ROSTERD_ADMIN_INITIAL_PASSWORD"
)

// GetOrGenerateAdminPassword returns the admin password from the environment,
// or generates a cryptographically random one.
func GetOrGenerateAdminPassword() (string, error) {
	if password := os.Getenv(EnvAdminInitialPassword); password != "" {
		if err := ValidatePassword(password); err != nil {
			return "", fmt.Errorf("%s: %w", EnvAdminInitialPassword, err)
		}
		return password, nil
	}

	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DefaultAdminUser returns the bootstrap administrator account.
func DefaultAdminUser(passwordHash string) *User {
	return &User{
		Name:         AdminName,
		Email:        AdminEmail,
		Role:         string(RoleAdmin),
		PasswordHash: passwordHash,
	}
}
