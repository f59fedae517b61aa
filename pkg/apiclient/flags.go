package apiclient

import (
	"time"
)

// MonitoringFlag records an actor that exceeded the write-rate threshold.
type MonitoringFlag struct {
	ID          uint      `json:"id"`
	ActorID     uint      `json:"actor_id"`
	Reason      string    `json:"reason"`
	WindowStart time.Time `json:"window_start"`
	CreatedAt   time.Time `json:"created_at"`
}

// FlagPage is one page of monitoring flags.
type FlagPage struct {
	Flags  []MonitoringFlag `json:"flags"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ListFlags returns a page of monitoring flags, newest first. Admin only.
func (c *Client) ListFlags(limit, offset int) (*FlagPage, error) {
	path := "/api/v1/flags"
	if q := pagination(limit, offset); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page FlagPage
	if err := c.get(path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
