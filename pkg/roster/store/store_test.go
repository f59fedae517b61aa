package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marmos91/rosterd/pkg/roster/models"
)

func newTestStore(t *testing.T) *GORMStore {
	t.Helper()

	s, err := New(&Config{
		Type:   DatabaseTypeSQLite,
		SQLite: SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func mustCreateUser(t *testing.T, s *GORMStore, name, email, role string) *models.User {
	t.Helper()

	hash, err := models.HashPassword("test-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{Name: name, Email: email, Role: role, PasswordHash: hash}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := mustCreateUser(t, s, "Alice", "alice@example.com", "user")
	if created.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}

	byID, err := s.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to get user by ID: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", byID.Email)
	}

	byEmail, err := s.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("failed to get user by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("expected ID %d, got %d", created.ID, byEmail.ID)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByID(context.Background(), 999)
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	mustCreateUser(t, s, "Alice", "alice@example.com", "user")

	dup := &models.User{Name: "Other Alice", Email: "alice@example.com", Role: "user"}
	err := s.CreateUser(context.Background(), dup)
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "Alice", "alice@example.com", "user")
	mustCreateUser(t, s, "Bob", "bob@example.com", "user")

	t.Run("rename", func(t *testing.T) {
		alice.Name = "Alice Cooper"
		if err := s.UpdateUser(ctx, alice); err != nil {
			t.Fatalf("failed to update user: %v", err)
		}

		got, err := s.GetUserByID(ctx, alice.ID)
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if got.Name != "Alice Cooper" {
			t.Errorf("expected updated name, got %s", got.Name)
		}
	})

	t.Run("keep own email", func(t *testing.T) {
		if err := s.UpdateUser(ctx, alice); err != nil {
			t.Errorf("updating without changing email should succeed, got %v", err)
		}
	})

	t.Run("email collision", func(t *testing.T) {
		alice.Email = "bob@example.com"
		err := s.UpdateUser(ctx, alice)
		if !errors.Is(err, models.ErrDuplicateEmail) {
			t.Errorf("expected ErrDuplicateEmail, got %v", err)
		}
		alice.Email = "alice@example.com"
	})

	t.Run("missing user", func(t *testing.T) {
		ghost := &models.User{ID: 999, Name: "Ghost", Email: "ghost@example.com"}
		err := s.UpdateUser(ctx, ghost)
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "Alice", "alice@example.com", "user")

	if err := s.DeleteUser(ctx, alice.ID); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	_, err := s.GetUserByID(ctx, alice.ID)
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}

	if err := s.DeleteUser(ctx, alice.ID); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound on double delete, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "Charlie", "charlie@example.com", "user")
	mustCreateUser(t, s, "Alice", "alice@example.com", "admin")
	mustCreateUser(t, s, "Bob", "bob@example.com", "user")

	t.Run("default sort is name ascending", func(t *testing.T) {
		users, total, err := s.ListUsers(ctx, ListOptions{})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		if len(users) != 3 || users[0].Name != "Alice" || users[2].Name != "Charlie" {
			t.Errorf("unexpected order: %v", names(users))
		}
	})

	t.Run("invalid sort key falls back", func(t *testing.T) {
		users, _, err := s.ListUsers(ctx, ListOptions{SortBy: "password_hash"})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if users[0].Name != "Alice" {
			t.Errorf("expected fallback to name ascending, got %v", names(users))
		}
	})

	t.Run("descending", func(t *testing.T) {
		users, _, err := s.ListUsers(ctx, ListOptions{SortBy: "name", Descending: true})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if users[0].Name != "Charlie" {
			t.Errorf("expected Charlie first, got %v", names(users))
		}
	})

	t.Run("query filter", func(t *testing.T) {
		users, total, err := s.ListUsers(ctx, ListOptions{Query: "ALI"})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if total != 1 || users[0].Name != "Alice" {
			t.Errorf("expected only Alice, got %v", names(users))
		}
	})

	t.Run("role filter", func(t *testing.T) {
		_, total, err := s.ListUsers(ctx, ListOptions{Role: "admin"})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if total != 1 {
			t.Errorf("expected 1 admin, got %d", total)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		users, total, err := s.ListUsers(ctx, ListOptions{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if total != 3 {
			t.Errorf("expected total 3 regardless of page, got %d", total)
		}
		if len(users) != 1 || users[0].Name != "Charlie" {
			t.Errorf("expected last page with Charlie, got %v", names(users))
		}
	})
}

func names(users []*models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func TestValidateCredentials(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	hash, err := models.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Name: "Alice", Email: "alice@example.com", Role: "user", PasswordHash: hash}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	t.Run("valid", func(t *testing.T) {
		got, err := s.ValidateCredentials(ctx, "alice@example.com", "secret-password")
		if err != nil {
			t.Fatalf("expected credentials to validate, got %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.ValidateCredentials(ctx, "alice@example.com", "wrong")
		if !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.ValidateCredentials(ctx, "nobody@example.com", "secret-password")
		if !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestSetTwoFactorSecret(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "Alice", "alice@example.com", "user")

	if err := s.SetTwoFactorSecret(ctx, alice.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("failed to set secret: %v", err)
	}

	got, err := s.GetUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if !got.HasSecondFactor() {
		t.Error("expected second factor to be enrolled")
	}

	if err := s.SetTwoFactorSecret(ctx, 999, "x"); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMutationLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "Alice", "alice@example.com", "user")

	for i := 0; i < 3; i++ {
		event := &models.MutationEvent{
			ActorID:    &alice.ID,
			Action:     string(models.ActionUpdate),
			EntityType: models.EntityTypeUser,
			EntityID:   alice.ID,
		}
		if err := s.AppendMutation(ctx, event); err != nil {
			t.Fatalf("failed to append mutation: %v", err)
		}
	}

	events, err := s.ListMutations(ctx, 10, 0)
	if err != nil {
		t.Fatalf("failed to list mutations: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("expected 3 events, got %d", len(events))
	}
}

func TestMutationLogSurvivesUserDeletion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "Alice", "alice@example.com", "user")

	event := &models.MutationEvent{
		ActorID:    &alice.ID,
		Action:     string(models.ActionDelete),
		EntityType: models.EntityTypeUser,
		EntityID:   alice.ID,
	}
	if err := s.AppendMutation(ctx, event); err != nil {
		t.Fatalf("failed to append mutation: %v", err)
	}

	if err := s.DeleteUser(ctx, alice.ID); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	events, err := s.ListMutations(ctx, 10, 0)
	if err != nil {
		t.Fatalf("failed to list mutations: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected event to survive user deletion, got %d events", len(events))
	}
}

func TestActorsExceeding(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "Alice", "alice@example.com", "user")
	bob := mustCreateUser(t, s, "Bob", "bob@example.com", "user")

	appendN := func(actorID uint, n int) {
		for i := 0; i < n; i++ {
			event := &models.MutationEvent{
				ActorID:    &actorID,
				Action:     string(models.ActionUpdate),
				EntityType: models.EntityTypeUser,
				EntityID:   actorID,
			}
			if err := s.AppendMutation(ctx, event); err != nil {
				t.Fatalf("failed to append mutation: %v", err)
			}
		}
	}

	appendN(alice.ID, 12)
	appendN(bob.ID, 3)

	// Anonymous writes must not count toward any actor.
	anon := &models.MutationEvent{
		Action:     string(models.ActionCreate),
		EntityType: models.EntityTypeUser,
		EntityID:   bob.ID,
	}
	if err := s.AppendMutation(ctx, anon); err != nil {
		t.Fatalf("failed to append anonymous mutation: %v", err)
	}

	since := time.Now().Add(-time.Minute)
	counts, err := s.ActorsExceeding(ctx, since, 10)
	if err != nil {
		t.Fatalf("failed to query actors: %v", err)
	}

	if len(counts) != 1 {
		t.Fatalf("expected 1 actor over threshold, got %d", len(counts))
	}
	if counts[0].ActorID != alice.ID || counts[0].Count != 12 {
		t.Errorf("unexpected result: %+v", counts[0])
	}

	counts, err = s.ActorsExceeding(ctx, time.Now().Add(time.Minute), 10)
	if err != nil {
		t.Fatalf("failed to query actors: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected no actors for a future window, got %d", len(counts))
	}
}

func TestFlagIdempotence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "Alice", "alice@example.com", "user")
	window := time.Now().Truncate(time.Minute)

	flag := &models.MonitoringFlag{
		ActorID:     alice.ID,
		Reason:      "12 mutations in 2m window",
		WindowStart: window,
	}
	if err := s.CreateFlag(ctx, flag); err != nil {
		t.Fatalf("failed to create flag: %v", err)
	}

	// Same actor, same window: silently ignored.
	dup := &models.MonitoringFlag{
		ActorID:     alice.ID,
		Reason:      "12 mutations in 2m window",
		WindowStart: window,
	}
	if err := s.CreateFlag(ctx, dup); err != nil {
		t.Fatalf("expected duplicate flag to be a no-op, got %v", err)
	}

	// Same actor, next window: new flag.
	next := &models.MonitoringFlag{
		ActorID:     alice.ID,
		Reason:      "15 mutations in 2m window",
		WindowStart: window.Add(time.Minute),
	}
	if err := s.CreateFlag(ctx, next); err != nil {
		t.Fatalf("failed to create flag for next window: %v", err)
	}

	flags, err := s.ListFlags(ctx, 10, 0)
	if err != nil {
		t.Fatalf("failed to list flags: %v", err)
	}
	if len(flags) != 2 {
		t.Errorf("expected 2 flags, got %d", len(flags))
	}
}

func TestEnsureAdminUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	password, err := s.EnsureAdminUser(ctx)
	if err != nil {
		t.Fatalf("failed to ensure admin: %v", err)
	}
	if password == "" {
		t.Fatal("expected generated password on first bootstrap")
	}

	admin, err := s.GetUserByEmail(ctx, models.AdminEmail)
	if err != nil {
		t.Fatalf("failed to get admin: %v", err)
	}
	if !admin.IsAdmin() {
		t.Error("expected bootstrap user to have admin role")
	}
	if !models.VerifyPassword(password, admin.PasswordHash) {
		t.Error("expected returned password to match stored hash")
	}

	// Second call is a no-op.
	password, err = s.EnsureAdminUser(ctx)
	if err != nil {
		t.Fatalf("failed on repeat ensure: %v", err)
	}
	if password != "" {
		t.Error("expected no password when admin already exists")
	}
}
