package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/marmos91/rosterd/pkg/roster/models"
)

// DefaultPageSize is the page size applied when a list request does not
// specify a limit.
const DefaultPageSize = 10

// sortColumns is the allow-list of ListOptions sort keys. Anything else
// silently falls back to the default ordering rather than erroring.
var sortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
}

// ListOptions controls filtering, sorting, and pagination of user listings.
type ListOptions struct {
	// Query is matched as a substring against name and email.
	Query string

	// Role filters by exact role when set.
	Role string

	// SortBy must be one of the allow-listed columns; invalid values fall
	// back to the default (name ascending).
	SortBy string

	// Descending reverses the sort order.
	Descending bool

	// Limit and Offset paginate the result. Negative values are treated as
	// unset; a zero limit falls back to DefaultPageSize.
	Limit  int
	Offset int
}

func (o *ListOptions) normalize() {
	if o.Limit <= 0 {
		o.Limit = DefaultPageSize
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// orderClause returns the ORDER BY expression for the options.
func (o *ListOptions) orderClause() string {
	column, ok := sortColumns[o.SortBy]
	if !ok {
		column = "name"
	}
	if o.Descending {
		return column + " DESC"
	}
	return column + " ASC"
}

func (s *GORMStore) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

func (s *GORMStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "email", email, models.ErrUserNotFound)
}

// ListUsers returns a filtered, sorted page of users plus the total count of
// matches before pagination.
func (s *GORMStore) ListUsers(ctx context.Context, opts ListOptions) ([]*models.User, int64, error) {
	opts.normalize()

	q := s.db.WithContext(ctx).Model(&models.User{})

	if opts.Query != "" {
		pattern := "%" + strings.ToLower(opts.Query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if opts.Role != "" {
		q = q.Where("role = ?", opts.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := q.Order(opts.orderClause()).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListAllUsers returns every registry entry ordered by name. This backs the
// full snapshot sent with each broadcast, so it always reads the live table.
func (s *GORMStore) ListAllUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser inserts a new registry entry. The email uniqueness pre-check is
// best-effort; the unique index is the real guarantee and its violation maps
// to the same ErrDuplicateEmail.
func (s *GORMStore) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.ErrDuplicateEmail
	}

	return create(s.db, ctx, user, models.ErrDuplicateEmail)
}

// UpdateUser modifies name, email, role, and avatar for the given user.
// The email collision check excludes the user's own row.
func (s *GORMStore) UpdateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("id = ?", user.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrUserNotFound)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", user.Email, user.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.ErrDuplicateEmail
	}

	err := s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Email", "Role", "AvatarKey").
		Updates(user).Error
	if err != nil && isUniqueConstraintError(err) {
		return models.ErrDuplicateEmail
	}
	return err
}

// DeleteUser removes the registry entry. Prior mutation events and
// monitoring flags referencing the user are retained.
func (s *GORMStore) DeleteUser(ctx context.Context, id uint) error {
	return deleteByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

// ValidateCredentials verifies an email/password pair. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *GORMStore) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// Burn a comparison so the miss costs the same as a mismatch.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// dummyHash is a bcrypt hash of an unguessable value, used to equalize the
// cost of credential checks for unknown emails.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("rosterd-no-such-user"), models.DefaultBcryptCost)
	return h
}()

// SetTwoFactorSecret stores (or overwrites) the user's second-factor secret.
func (s *GORMStore) SetTwoFactorSecret(ctx context.Context, userID uint, secret string) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("two_factor_secret", secret)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// SetAvatarKey stores the avatar object key for the user.
func (s *GORMStore) SetAvatarKey(ctx context.Context, userID uint, key string) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_key", key)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// EnsureAdminUser creates the bootstrap administrator account if no account
// with the admin email exists yet. It returns the generated password exactly
// once (empty string if the admin already existed).
func (s *GORMStore) EnsureAdminUser(ctx context.Context) (string, error) {
	_, err := s.GetUserByEmail(ctx, models.AdminEmail)
	if err == nil {
		return "", nil // Admin already exists
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return "", err
	}

	passwordFromEnv := os.Getenv(models.EnvAdminInitialPassword) != ""

	password, err := models.GetOrGenerateAdminPassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	passwordHash, err := models.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.DefaultAdminUser(passwordHash)
	if err := s.CreateUser(ctx, admin); err != nil {
		return "", fmt.Errorf("failed to create admin user: %w", err)
	}

	if passwordFromEnv {
		return "", nil
	}
	return password, nil
}
