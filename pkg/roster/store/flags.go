package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/marmos91/rosterd/pkg/roster/models"
)

// CreateFlag records a monitoring flag. Flags are keyed by (actor, window
// start), so re-detecting the same actor within the same window is a no-op
// rather than a duplicate row.
func (s *GORMStore) CreateFlag(ctx context.Context, flag *models.MonitoringFlag) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}, {Name: "window_start"}},
			DoNothing: true,
		}).
		Create(flag).Error
}

// ListFlags returns monitoring flags, newest first.
func (s *GORMStore) ListFlags(ctx context.Context, limit, offset int) ([]*models.MonitoringFlag, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var flags []*models.MonitoringFlag
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&flags).Error
	if err != nil {
		return nil, err
	}
	return flags, nil
}
