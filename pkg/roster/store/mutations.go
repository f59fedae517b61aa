package store

import (
	"context"
	"time"

	"github.com/marmos91/rosterd/pkg/roster/models"
)

// AppendMutation records a write to the directory in the mutation log.
// The log is append-only; entries are never updated or deleted, and they
// survive deletion of the actor they reference.
func (s *GORMStore) AppendMutation(ctx context.Context, event *models.MutationEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

// ListMutations returns mutation log entries, newest first.
func (s *GORMStore) ListMutations(ctx context.Context, limit, offset int) ([]*models.MutationEvent, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var events []*models.MutationEvent
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ActorsExceeding returns actors whose mutation count since the given time
// is strictly greater than the threshold. Anonymous entries (nil actor) are
// excluded from the aggregation.
func (s *GORMStore) ActorsExceeding(ctx context.Context, since time.Time, threshold int) ([]models.ActorMutationCount, error) {
	var counts []models.ActorMutationCount
	err := s.db.WithContext(ctx).
		Model(&models.MutationEvent{}).
		Select("actor_id, COUNT(*) AS count").
		Where("actor_id IS NOT NULL AND created_at >= ?", since).
		Group("actor_id").
		Having("COUNT(*) > ?", threshold).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
