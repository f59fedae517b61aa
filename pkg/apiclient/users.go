package apiclient

import (
	"fmt"
	"time"
)

// User represents a directory entry.
type User struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	AvatarKey        *string   `json:"avatar_key,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// UserPage is one page of directory entries.
type UserPage struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
}

// ListUsersOptions filters and paginates directory listings.
type ListUsersOptions struct {
	Query      string
	Role       string
	SortBy     string
	Descending bool
	Limit      int
	Offset     int
}

// CreateUserRequest is the request to create a directory entry.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserRequest is the request to update a directory entry.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// ListUsers returns a page of directory entries.
func (c *Client) ListUsers(opts ListUsersOptions) (*UserPage, error) {
	q := pagination(opts.Limit, opts.Offset)
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}
	if opts.Role != "" {
		q.Set("role", opts.Role)
	}
	if opts.SortBy != "" {
		q.Set("sort_by", opts.SortBy)
	}
	if opts.Descending {
		q.Set("order", "desc")
	}

	path := "/api/v1/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page UserPage
	if err := c.get(path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUser returns a directory entry by ID.
func (c *Client) GetUser(id uint) (*User, error) {
	var user User
	if err := c.get(fmt.Sprintf("/api/v1/users/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new directory entry.
func (c *Client) CreateUser(req *CreateUserRequest) (*User, error) {
	var user User
	if err := c.post("/api/v1/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing directory entry.
func (c *Client) UpdateUser(id uint, req *UpdateUserRequest) (*User, error) {
	var user User
	if err := c.put(fmt.Sprintf("/api/v1/users/%d", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a directory entry.
func (c *Client) DeleteUser(id uint) error {
	return c.delete(fmt.Sprintf("/api/v1/users/%d", id), nil)
}
