// Package models defines the directory registry domain: users, the
// append-only mutation log, and monitoring flags.
package models

// AllModels returns all GORM models for auto-migration.
func AllModels() []any {
	return []any{
		&User{},
		&MutationEvent{},
		&MonitoringFlag{},
	}
}
