package models

import "time"

// MutationAction is the kind of write recorded in the mutation log.
type MutationAction string

const (
	ActionCreate MutationAction = "create"
	ActionUpdate MutationAction = "update"
	ActionDelete MutationAction = "delete"
)

// EntityTypeUser is the only entity type currently audited.
const EntityTypeUser = "user"

// MutationEvent is one append-only audit record for a committed registry
// write. ActorID is nil for anonymous writes (e.g. self-registration).
// Events are never mutated or deleted by the service; retention is an
// operational concern.
type MutationEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    *uint     `gorm:"index" json:"actor_id,omitempty"`
	Action     string    `gorm:"not null;size:50" json:"action"`
	EntityType string    `gorm:"not null;size:50" json:"entity_type"`
	EntityID   uint      `gorm:"not null" json:"entity_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for MutationEvent.
func (MutationEvent) TableName() string {
	return "mutation_events"
}

// ActorMutationCount is the per-actor aggregate the anomaly detector scans.
type ActorMutationCount struct {
	ActorID uint
	Count   int64
}
