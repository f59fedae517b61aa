// Package directory implements the user directory operations: CRUD on
// registry entries, the append-only mutation log, and event fan-out to
// connected observers.
package directory

import (
	"context"
	"time"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/roster/models"
	"github.com/marmos91/rosterd/pkg/roster/store"
	"github.com/marmos91/rosterd/pkg/roster/sync"
)

// broadcastTimeout bounds the detached snapshot load per broadcast.
const broadcastTimeout = 10 * time.Second

// Broadcaster fans out an event to connected observers. *sync.Hub is the
// production implementation.
type Broadcaster interface {
	Broadcast(ctx context.Context, eventType sync.EventType, data any) error
}

// Metrics records directory write activity. A nil Metrics disables
// collection with zero overhead.
type Metrics interface {
	MutationRecorded(action string)
}

// Service coordinates directory writes. Order per mutation is fixed: commit
// the entry, append the audit record, then fan out to observers. Audit and
// fan-out failures never roll back a committed write.
type Service struct {
	store   store.Store
	hub     Broadcaster
	metrics Metrics
}

// NewService creates a directory service.
func NewService(st store.Store, hub Broadcaster) *Service {
	return &Service{store: st, hub: hub}
}

// SetMetrics attaches a metrics recorder. Must be called before the service
// handles requests.
func (s *Service) SetMetrics(m Metrics) {
	s.metrics = m
}

// Page is one page of directory entries.
type Page struct {
	Users []*models.PublicUser `json:"users"`
	Total int64                `json:"total"`
}

// List returns a filtered, sorted page of directory entries.
func (s *Service) List(ctx context.Context, opts store.ListOptions) (*Page, error) {
	users, total, err := s.store.ListUsers(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Page{Users: models.PublicUsers(users), Total: total}, nil
}

// Get returns a single directory entry.
func (s *Service) Get(ctx context.Context, id uint) (*models.PublicUser, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToPublic(), nil
}

// CreateInput holds the fields for a new directory entry.
type CreateInput struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// Create adds a directory entry, records the mutation, and broadcasts it.
// actorID is nil for anonymous self-registration.
func (s *Service) Create(ctx context.Context, actorID *uint, input CreateInput) (*models.PublicUser, error) {
	if input.Role == "" {
		input.Role = string(models.RoleUser)
	}

	if err := models.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	hash, err := models.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: hash,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.recordMutation(ctx, actorID, models.ActionCreate, user.ID)
	s.broadcast(sync.EventEntryAdded, user.ToPublic())

	logger.InfoCtx(ctx, "directory entry created", "entity_id", user.ID)
	return user.ToPublic(), nil
}

// UpdateInput holds the mutable fields of a directory entry. Nil fields are
// left unchanged.
type UpdateInput struct {
	Name  *string
	Email *string
	Role  *string
}

// Update modifies a directory entry, records the mutation, and broadcasts it.
func (s *Service) Update(ctx context.Context, actorID *uint, id uint, input UpdateInput) (*models.PublicUser, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.recordMutation(ctx, actorID, models.ActionUpdate, user.ID)
	s.broadcast(sync.EventEntryUpdated, user.ToPublic())

	logger.InfoCtx(ctx, "directory entry updated", "entity_id", user.ID)
	return user.ToPublic(), nil
}

// Delete removes a directory entry, records the mutation, and broadcasts it.
// The entry's past mutation events and monitoring flags are retained.
func (s *Service) Delete(ctx context.Context, actorID *uint, id uint) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.recordMutation(ctx, actorID, models.ActionDelete, id)
	s.broadcast(sync.EventEntryDeleted, id)

	logger.InfoCtx(ctx, "directory entry deleted", "entity_id", id)
	return nil
}

// recordMutation appends to the audit log. Failures are logged and swallowed;
// the directory write already committed and observers still get the event.
func (s *Service) recordMutation(ctx context.Context, actorID *uint, action models.MutationAction, entityID uint) {
	event := &models.MutationEvent{
		ActorID:    actorID,
		Action:     string(action),
		EntityType: models.EntityTypeUser,
		EntityID:   entityID,
	}
	if err := s.store.AppendMutation(ctx, event); err != nil {
		logger.ErrorCtx(ctx, "failed to record mutation",
			"action", string(action), "entity_id", entityID, "error", err.Error())
		return
	}
	if s.metrics != nil {
		s.metrics.MutationRecorded(string(action))
	}
}

// broadcast fans out the event on a detached context so a slow snapshot or
// observer never extends the request that caused the mutation.
func (s *Service) broadcast(eventType sync.EventType, data any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
		defer cancel()

		if err := s.hub.Broadcast(ctx, eventType, data); err != nil {
			logger.Error("failed to broadcast event",
				"event_type", string(eventType), "error", err.Error())
		}
	}()
}
