package sync

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/marmos91/rosterd/pkg/roster/models"
)

func testSnapshot(users ...*models.PublicUser) SnapshotFunc {
	return func(context.Context) ([]*models.PublicUser, error) {
		return users, nil
	}
}

// newQueueObserver builds an observer without a connection; tests drain the
// send queue directly instead of running the pumps.
func newQueueObserver() *Observer {
	return &Observer{
		ID:   uuid.New(),
		send: make(chan []byte, sendBufferSize),
	}
}

func receive(t *testing.T, o *Observer) *Envelope {
	t.Helper()

	select {
	case msg := <-o.send:
		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			t.Fatalf("failed to decode envelope: %v", err)
		}
		return &env
	default:
		t.Fatal("expected a queued message")
		return nil
	}
}

func TestRegisterSendsInitialSnapshot(t *testing.T) {
	hub := NewHub(testSnapshot(
		&models.PublicUser{ID: 1, Name: "Alice"},
		&models.PublicUser{ID: 2, Name: "Bob"},
	))

	o := newQueueObserver()
	if err := hub.Register(context.Background(), o); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if hub.Count() != 1 {
		t.Errorf("expected 1 observer, got %d", hub.Count())
	}

	env := receive(t, o)
	if env.Type != EventInitialData {
		t.Errorf("expected INITIAL_DATA, got %s", env.Type)
	}
	if len(env.AllUsers) != 2 {
		t.Errorf("expected 2 users in snapshot, got %d", len(env.AllUsers))
	}
}

func TestBroadcastReachesAllObservers(t *testing.T) {
	hub := NewHub(testSnapshot(&models.PublicUser{ID: 1, Name: "Alice"}))
	ctx := context.Background()

	first := newQueueObserver()
	second := newQueueObserver()
	for _, o := range []*Observer{first, second} {
		if err := hub.Register(ctx, o); err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		receive(t, o) // drain INITIAL_DATA
	}

	entry := &models.PublicUser{ID: 3, Name: "Carol"}
	if err := hub.Broadcast(ctx, EventEntryAdded, entry); err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	for _, o := range []*Observer{first, second} {
		env := receive(t, o)
		if env.Type != EventEntryAdded {
			t.Errorf("expected ENTRY_ADDED, got %s", env.Type)
		}
		if len(env.AllUsers) != 1 {
			t.Errorf("expected snapshot alongside event, got %d users", len(env.AllUsers))
		}
		if env.Data == nil {
			t.Error("expected event data")
		}
	}
}

func TestSlowObserverIsDropped(t *testing.T) {
	hub := NewHub(testSnapshot())
	ctx := context.Background()

	slow := newQueueObserver()
	healthy := newQueueObserver()
	for _, o := range []*Observer{slow, healthy} {
		if err := hub.Register(ctx, o); err != nil {
			t.Fatalf("failed to register: %v", err)
		}
	}
	receive(t, healthy)

	// Fill the slow observer's queue without draining it. One slot is
	// already taken by INITIAL_DATA. The healthy observer drains as it goes.
	for i := 0; i < sendBufferSize; i++ {
		_ = hub.Broadcast(ctx, EventEntryUpdated, nil)
		receive(t, healthy)
	}

	if hub.Count() != 1 {
		t.Errorf("expected slow observer to be dropped, count is %d", hub.Count())
	}

	// The healthy observer keeps receiving.
	if err := hub.Broadcast(ctx, EventEntryDeleted, uint(5)); err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if env := receive(t, healthy); env.Type != EventEntryDeleted {
		t.Errorf("expected ENTRY_DELETED, got %s", env.Type)
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(testSnapshot())

	o := newQueueObserver()
	if err := hub.Register(context.Background(), o); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	hub.Unregister(o.ID)
	hub.Unregister(o.ID)
	hub.Unregister(uuid.New()) // unknown ID is a no-op

	if hub.Count() != 0 {
		t.Errorf("expected 0 observers, got %d", hub.Count())
	}
}

func TestEnqueueAfterCloseDoesNotPanic(t *testing.T) {
	o := newQueueObserver()
	o.close()

	if o.enqueue([]byte("late")) {
		t.Error("expected enqueue on closed observer to fail")
	}
}

func TestEnvelopeAllUsersNeverOmitted(t *testing.T) {
	hub := NewHub(testSnapshot())

	msg, err := hub.envelope(context.Background(), EventEntryDeleted, uint(1))
	if err != nil {
		t.Fatalf("failed to build envelope: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(msg, &raw); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if _, ok := raw["allUsers"]; !ok {
		t.Error("expected allUsers key even for empty registry")
	}
}
