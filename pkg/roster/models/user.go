package models

import (
	"fmt"
	"time"
)

// UserRole represents the role of a registry entry in the system.
type UserRole string

const (
	// RoleUser is a regular directory user.
	RoleUser UserRole = "user"
	// RoleAdmin is an administrator with access to audit data.
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is a valid UserRole.
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a directory registry entry.
//
// PasswordHash and TwoFactorSecret are credential material and are never
// serialized: every API response and broadcast snapshot carries the
// PublicUser view instead.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null;size:255" json:"name"`
	Email           string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Role            string    `gorm:"default:user;size:50" json:"role"`
	PasswordHash    string    `json:"-"`
	TwoFactorSecret string    `json:"-"` // empty = second factor not enrolled
	AvatarKey       *string   `gorm:"size:512" json:"avatar_key,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// PublicUser is the sanitized view of a User delivered to API clients and
// sync observers. It carries no credential material.
type PublicUser struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	AvatarKey        *string   `json:"avatar_key,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToPublic converts the user to its public view.
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		TwoFactorEnabled: u.TwoFactorSecret != "",
		AvatarKey:        u.AvatarKey,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// HasSecondFactor returns true if the user has a second-factor secret enrolled.
func (u *User) HasSecondFactor() bool {
	return u.TwoFactorSecret != ""
}

// IsAdmin checks if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}

// GetRole returns the user's role as a UserRole type.
func (u *User) GetRole() UserRole {
	return UserRole(u.Role)
}

// Validate checks if the user has valid configuration.
// All failures wrap ErrInvalidUser.
func (u *User) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if u.Role != "" && !UserRole(u.Role).IsValid() {
		return fmt.Errorf("%w: invalid role %q", ErrInvalidUser, u.Role)
	}
	return nil
}

// PublicUsers converts a slice of users to their public views.
// Returns an empty slice (not nil) so snapshots always marshal as arrays.
func PublicUsers(users []*User) []*PublicUser {
	out := make([]*PublicUser, len(users))
	for i, u := range users {
		out[i] = u.ToPublic()
	}
	return out
}
