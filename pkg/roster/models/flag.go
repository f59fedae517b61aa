package models

import "time"

// MonitoringFlag records an actor that exceeded the mutation-rate threshold.
//
// Flags are purely observational: the detector never acts on the flagged
// actor and never clears flags. The (actor_id, window_start) unique index
// makes repeated detections within the same detection window no-ops, while
// still allowing new flags for the same actor in later windows.
type MonitoringFlag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ActorID     uint      `gorm:"not null;uniqueIndex:idx_flag_actor_window" json:"actor_id"`
	Reason      string    `gorm:"not null;size:512" json:"reason"`
	WindowStart time.Time `gorm:"not null;uniqueIndex:idx_flag_actor_window" json:"window_start"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for MonitoringFlag.
func (MonitoringFlag) TableName() string {
	return "monitoring_flags"
}
