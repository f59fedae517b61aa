package store

import (
	"context"
	"time"

	"github.com/marmos91/rosterd/pkg/roster/models"
)

// UserStore provides registry entry persistence.
type UserStore interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, opts ListOptions) ([]*models.User, int64, error)
	ListAllUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	ValidateCredentials(ctx context.Context, email, password string) (*models.User, error)
	SetTwoFactorSecret(ctx context.Context, userID uint, secret string) error
	SetAvatarKey(ctx context.Context, userID uint, key string) error
}

// MutationStore provides append-only persistence for the mutation log.
type MutationStore interface {
	AppendMutation(ctx context.Context, event *models.MutationEvent) error
	ListMutations(ctx context.Context, limit, offset int) ([]*models.MutationEvent, error)
	ActorsExceeding(ctx context.Context, since time.Time, threshold int) ([]models.ActorMutationCount, error)
}

// FlagStore persists monitoring flags created by the anomaly detector.
type FlagStore interface {
	CreateFlag(ctx context.Context, flag *models.MonitoringFlag) error
	ListFlags(ctx context.Context, limit, offset int) ([]*models.MonitoringFlag, error)
}

// Store is the full registry persistence interface.
type Store interface {
	UserStore
	MutationStore
	FlagStore

	Ping(ctx context.Context) error
	Close() error
}
