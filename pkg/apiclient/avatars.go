package apiclient

import (
	"fmt"
	"time"
)

// PresignedURL is a time-limited URL for a direct object storage operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RequestAvatarUpload asks the server for a presigned upload URL.
func (c *Client) RequestAvatarUpload(userID uint) (*PresignedURL, error) {
	var resp PresignedURL
	if err := c.post(fmt.Sprintf("/api/v1/users/%d/avatar", userID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAvatarDownload asks the server for a presigned download URL.
func (c *Client) GetAvatarDownload(userID uint) (*PresignedURL, error) {
	var resp PresignedURL
	if err := c.get(fmt.Sprintf("/api/v1/users/%d/avatar", userID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
