package logger

import "log/slog"

// Standard field keys for structured logging. Use these keys consistently
// across all log statements for log aggregation and querying.
const (
	// Distributed tracing
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// HTTP request
	KeyRequestID  = "request_id"  // Per-request identifier from the router
	KeyMethod     = "method"      // HTTP method
	KeyPath       = "path"        // Request path
	KeyStatus     = "status"      // HTTP status code
	KeyClientIP   = "client_ip"   // Client IP address
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds

	// Identity
	KeyUserID = "user_id" // Registry entry / actor identifier
	KeyEmail  = "email"   // Account email
	KeyRole   = "role"    // Account role

	// Directory mutations
	KeyAction   = "action"    // Mutation action: create, update, delete
	KeyEntityID = "entity_id" // Registry entry the mutation touched
	KeyActorID  = "actor_id"  // Authenticated actor behind a mutation

	// Sync fan-out
	KeyObserverID = "observer_id" // Observer connection identifier
	KeyObservers  = "observers"   // Number of connected observers
	KeyEventType  = "event_type"  // Broadcast event type

	// Anomaly detection
	KeyCount       = "count"        // Mutations counted in the window
	KeyThreshold   = "threshold"    // Configured detection threshold
	KeyWindowStart = "window_start" // Start of the detection window

	// Misc
	KeyError     = "error"      // Error message
	KeyStoreType = "store_type" // Database backend: sqlite, postgres
)

// Field constructors for type safety.

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// RequestID returns a slog.Attr for the per-request identifier
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// ClientIP returns a slog.Attr for client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// UserID returns a slog.Attr for a registry entry identifier
func UserID(id uint) slog.Attr {
	return slog.Any(KeyUserID, id)
}

// ActorID returns a slog.Attr for the actor behind a mutation
func ActorID(id uint) slog.Attr {
	return slog.Any(KeyActorID, id)
}

// Action returns a slog.Attr for a mutation action
func Action(a string) slog.Attr {
	return slog.String(KeyAction, a)
}

// Observers returns a slog.Attr for the connected observer count
func Observers(n int) slog.Attr {
	return slog.Int(KeyObservers, n)
}

// EventType returns a slog.Attr for a broadcast event type
func EventType(t string) slog.Attr {
	return slog.String(KeyEventType, t)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
