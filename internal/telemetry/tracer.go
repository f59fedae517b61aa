package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for rosterd operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// Client attributes
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"

	// HTTP attributes
	AttrHTTPMethod = "http.method"
	AttrHTTPPath   = "http.path"
	AttrHTTPStatus = "http.status_code"

	// Directory attributes
	AttrUserID    = "roster.user_id"
	AttrActorID   = "roster.actor_id"
	AttrEmail     = "roster.email"
	AttrRole      = "roster.role"
	AttrAction    = "roster.action"
	AttrEntityID  = "roster.entity_id"
	AttrPageLimit = "roster.limit"
	AttrPageTotal = "roster.total"

	// Auth attributes
	AttrAuthStage     = "auth.stage" // password, second_factor
	AttrAuthTokenType = "auth.token_type"

	// Sync attributes
	AttrEventType  = "sync.event_type"
	AttrObserverID = "sync.observer_id"
	AttrObservers  = "sync.observers"

	// Monitor attributes
	AttrThreshold   = "monitor.threshold"
	AttrWindowStart = "monitor.window_start"

	// Store attributes
	AttrStoreType = "store.type" // sqlite, postgres
)

// Span names for rosterd operations.
const (
	// HTTP request root span
	SpanHTTPRequest = "http.request"

	// Directory operations
	SpanDirectoryList   = "directory.list"
	SpanDirectoryGet    = "directory.get"
	SpanDirectoryCreate = "directory.create"
	SpanDirectoryUpdate = "directory.update"
	SpanDirectoryDelete = "directory.delete"

	// Auth operations
	SpanAuthLogin  = "auth.login"
	SpanAuthVerify = "auth.verify_second_factor"
	SpanAuthEnroll = "auth.enroll_second_factor"

	// Sync operations
	SpanSyncBroadcast = "sync.broadcast"
	SpanSyncSnapshot  = "sync.snapshot"

	// Monitor operations
	SpanMonitorSweep = "monitor.sweep"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for full client address
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// UserID returns an attribute for the subject user of an operation
func UserID(id uint) attribute.KeyValue {
	return attribute.Int64(AttrUserID, int64(id))
}

// ActorID returns an attribute for the authenticated actor of a mutation
func ActorID(id uint) attribute.KeyValue {
	return attribute.Int64(AttrActorID, int64(id))
}

// Email returns an attribute for a user email
func Email(email string) attribute.KeyValue {
	return attribute.String(AttrEmail, email)
}

// Role returns an attribute for a user role
func Role(role string) attribute.KeyValue {
	return attribute.String(AttrRole, role)
}

// Action returns an attribute for a mutation action
func Action(action string) attribute.KeyValue {
	return attribute.String(AttrAction, action)
}

// EntityID returns an attribute for the entity a mutation touched
func EntityID(id uint) attribute.KeyValue {
	return attribute.Int64(AttrEntityID, int64(id))
}

// AuthStage returns an attribute for the authentication stage
func AuthStage(stage string) attribute.KeyValue {
	return attribute.String(AttrAuthStage, stage)
}

// EventType returns an attribute for a sync event type
func EventType(eventType string) attribute.KeyValue {
	return attribute.String(AttrEventType, eventType)
}

// ObserverID returns an attribute for a sync observer
func ObserverID(id string) attribute.KeyValue {
	return attribute.String(AttrObserverID, id)
}

// Observers returns an attribute for the observer count
func Observers(count int) attribute.KeyValue {
	return attribute.Int(AttrObservers, count)
}

// Threshold returns an attribute for the detector threshold
func Threshold(threshold int) attribute.KeyValue {
	return attribute.Int(AttrThreshold, threshold)
}

// StoreType returns an attribute for the database backend
func StoreType(t string) attribute.KeyValue {
	return attribute.String(AttrStoreType, t)
}

// StartDirectorySpan starts a span for a directory operation.
func StartDirectorySpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "directory."+operation, trace.WithAttributes(attrs...))
}

// StartAuthSpan starts a span for an authentication operation.
func StartAuthSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "auth."+operation, trace.WithAttributes(attrs...))
}

// StartSyncSpan starts a span for a sync fan-out operation.
func StartSyncSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "sync."+operation, trace.WithAttributes(attrs...))
}
