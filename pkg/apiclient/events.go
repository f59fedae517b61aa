package apiclient

import (
	"time"
)

// MutationEvent is one audit record from the mutation log.
type MutationEvent struct {
	ID         uint      `json:"id"`
	ActorID    *uint     `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uint      `json:"entity_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventPage is one page of mutation events.
type EventPage struct {
	Events []MutationEvent `json:"events"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// ListEvents returns a page of mutation events, newest first. Admin only.
func (c *Client) ListEvents(limit, offset int) (*EventPage, error) {
	path := "/api/v1/events"
	if q := pagination(limit, offset); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page EventPage
	if err := c.get(path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
