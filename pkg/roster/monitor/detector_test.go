package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/marmos91/rosterd/pkg/roster/models"
	"github.com/marmos91/rosterd/pkg/roster/store"
)

func newTestDetector(t *testing.T, config Config) (*Detector, *store.GORMStore) {
	t.Helper()

	s, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return NewDetector(s, config), s
}

func appendMutations(t *testing.T, s *store.GORMStore, actorID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		event := &models.MutationEvent{
			ActorID:    &actorID,
			Action:     string(models.ActionUpdate),
			EntityType: models.EntityTypeUser,
			EntityID:   actorID,
		}
		if err := s.AppendMutation(context.Background(), event); err != nil {
			t.Fatalf("failed to append mutation: %v", err)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()

	if c.Interval != time.Minute || c.Window != 2*time.Minute || c.Threshold != 10 {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if !c.IsEnabled() {
		t.Error("expected detector to default to enabled")
	}
}

func TestSweepFlagsActorsOverThreshold(t *testing.T) {
	d, s := newTestDetector(t, Config{Threshold: 5})
	ctx := context.Background()

	appendMutations(t, s, 1, 6) // over
	appendMutations(t, s, 2, 5) // exactly at threshold: not flagged
	appendMutations(t, s, 3, 1) // well under

	d.Sweep(ctx)

	flags, err := s.ListFlags(ctx, 10, 0)
	if err != nil {
		t.Fatalf("failed to list flags: %v", err)
	}
	if len(flags) != 1 {
		t.Fatalf("expected 1 flag, got %d", len(flags))
	}
	if flags[0].ActorID != 1 {
		t.Errorf("expected actor 1 to be flagged, got %d", flags[0].ActorID)
	}
	if flags[0].Reason != "6 mutations in 2m0s window" {
		t.Errorf("unexpected reason: %q", flags[0].Reason)
	}
}

func TestSweepIsIdempotentWithinWindow(t *testing.T) {
	d, s := newTestDetector(t, Config{Threshold: 5})
	ctx := context.Background()

	appendMutations(t, s, 1, 6)

	// Freeze the clock so both sweeps compute the same window start.
	frozen := time.Now()
	d.now = func() time.Time { return frozen }

	d.Sweep(ctx)
	d.Sweep(ctx)

	flags, err := s.ListFlags(ctx, 10, 0)
	if err != nil {
		t.Fatalf("failed to list flags: %v", err)
	}
	if len(flags) != 1 {
		t.Errorf("expected repeated sweep to be a no-op, got %d flags", len(flags))
	}
}

func TestSweepFlagsAgainInLaterWindow(t *testing.T) {
	d, s := newTestDetector(t, Config{Threshold: 5})
	ctx := context.Background()

	appendMutations(t, s, 1, 6)

	base := time.Now().Truncate(time.Minute)
	d.now = func() time.Time { return base }
	d.Sweep(ctx)

	d.now = func() time.Time { return base.Add(time.Minute) }
	d.Sweep(ctx)

	flags, err := s.ListFlags(ctx, 10, 0)
	if err != nil {
		t.Fatalf("failed to list flags: %v", err)
	}
	if len(flags) != 2 {
		t.Errorf("expected a new flag for the later window, got %d", len(flags))
	}
}

func TestSweepIgnoresMutationsOutsideWindow(t *testing.T) {
	d, s := newTestDetector(t, Config{Threshold: 5})
	ctx := context.Background()

	appendMutations(t, s, 1, 6)

	// Pretend the sweep happens long after the writes.
	d.now = func() time.Time { return time.Now().Add(time.Hour) }
	d.Sweep(ctx)

	flags, err := s.ListFlags(ctx, 10, 0)
	if err != nil {
		t.Fatalf("failed to list flags: %v", err)
	}
	if len(flags) != 0 {
		t.Errorf("expected no flags for stale mutations, got %d", len(flags))
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	d, _ := newTestDetector(t, Config{Interval: 10 * time.Millisecond, Threshold: 5})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("detector did not stop after cancel")
	}
}
