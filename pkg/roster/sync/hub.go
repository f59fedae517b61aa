// Package sync fans out directory mutations to connected observers over
// WebSocket. Every event, including the initial one, carries a full snapshot
// of the registry so observers never need to reconcile partial state.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	gosync "sync"

	"github.com/google/uuid"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/roster/models"
)

// EventType identifies a broadcast event.
type EventType string

const (
	// EventInitialData is sent once to a newly registered observer.
	EventInitialData EventType = "INITIAL_DATA"

	// EventEntryAdded announces a created registry entry.
	EventEntryAdded EventType = "ENTRY_ADDED"

	// EventEntryUpdated announces a modified registry entry.
	EventEntryUpdated EventType = "ENTRY_UPDATED"

	// EventEntryDeleted announces a removed registry entry.
	EventEntryDeleted EventType = "ENTRY_DELETED"
)

// Envelope is the wire format for all observer events. AllUsers is always
// present and reflects the registry state at (or after) the mutation.
type Envelope struct {
	Type     EventType            `json:"type"`
	Data     any                  `json:"data,omitempty"`
	AllUsers []*models.PublicUser `json:"allUsers"`
}

// SnapshotFunc loads the current full registry snapshot.
type SnapshotFunc func(ctx context.Context) ([]*models.PublicUser, error)

// Metrics records observer and broadcast activity. A nil Metrics disables
// collection with zero overhead.
type Metrics interface {
	ObserverConnected()
	ObserverDisconnected()
	ObserverDropped()
	EventBroadcast(eventType string)
}

// Hub tracks connected observers and fans out events to them. A fresh
// snapshot is loaded per broadcast, not per observer, so all observers of
// one broadcast see identical state.
type Hub struct {
	mu        gosync.RWMutex
	observers map[uuid.UUID]*Observer
	snapshot  SnapshotFunc
	metrics   Metrics
}

// NewHub creates a hub that loads snapshots through the given function.
func NewHub(snapshot SnapshotFunc) *Hub {
	return &Hub{
		observers: make(map[uuid.UUID]*Observer),
		snapshot:  snapshot,
	}
}

// SetMetrics attaches a metrics recorder. Must be called before the hub is
// shared between goroutines.
func (h *Hub) SetMetrics(m Metrics) {
	h.metrics = m
}

// Register adds an observer and sends it the initial snapshot. The observer
// is removed again if the initial send cannot be queued.
func (h *Hub) Register(ctx context.Context, o *Observer) error {
	msg, err := h.envelope(ctx, EventInitialData, nil)
	if err != nil {
		return fmt.Errorf("failed to build initial snapshot: %w", err)
	}

	h.mu.Lock()
	h.observers[o.ID] = o
	count := len(h.observers)
	h.mu.Unlock()

	if !o.enqueue(msg) {
		h.Unregister(o.ID)
		return fmt.Errorf("observer %s rejected initial snapshot", o.ID)
	}

	if h.metrics != nil {
		h.metrics.ObserverConnected()
	}
	logger.Info("observer connected", "observer_id", o.ID.String(), "observers", count)
	return nil
}

// Unregister removes an observer and closes its send queue. Safe to call
// multiple times for the same ID.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	o, ok := h.observers[id]
	if ok {
		delete(h.observers, id)
	}
	count := len(h.observers)
	h.mu.Unlock()

	if ok {
		o.close()
		if h.metrics != nil {
			h.metrics.ObserverDisconnected()
		}
		logger.Info("observer disconnected", "observer_id", id.String(), "observers", count)
	}
}

// Count returns the number of connected observers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Broadcast sends an event with a fresh full snapshot to every connected
// observer. Observers whose send queue is full are dropped; a consumer that
// cannot keep up must reconnect and resync rather than stall the rest.
func (h *Hub) Broadcast(ctx context.Context, eventType EventType, data any) error {
	msg, err := h.envelope(ctx, eventType, data)
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*Observer, 0, len(h.observers))
	for _, o := range h.observers {
		targets = append(targets, o)
	}
	h.mu.RUnlock()

	var dropped []uuid.UUID
	for _, o := range targets {
		if !o.enqueue(msg) {
			dropped = append(dropped, o.ID)
		}
	}

	for _, id := range dropped {
		logger.Warn("dropping slow observer", "observer_id", id.String())
		if h.metrics != nil {
			h.metrics.ObserverDropped()
		}
		h.Unregister(id)
	}

	if h.metrics != nil {
		h.metrics.EventBroadcast(string(eventType))
	}
	logger.Debug("event broadcast",
		"event_type", string(eventType),
		"observers", len(targets)-len(dropped))
	return nil
}

// envelope loads a snapshot and marshals the full event message.
func (h *Hub) envelope(ctx context.Context, eventType EventType, data any) ([]byte, error) {
	users, err := h.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return json.Marshal(&Envelope{
		Type:     eventType,
		Data:     data,
		AllUsers: users,
	})
}
