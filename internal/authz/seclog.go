// internal/authz/seclog.go
// Structured security logging for authorization denials.
// Fire-and-forget from the guard's perspective: logging never changes the
// outcome of an authorization decision.

package authz

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DenialEvent describes a single refused access attempt
type DenialEvent struct {
	ActorID    int64
	Kind       ResourceKind
	Entity     string
	ResourceID int64
	Reason     string
}

// SecurityLogger accepts denial events
type SecurityLogger interface {
	Denied(ctx context.Context, event DenialEvent)
}

type logSecurityLogger struct {
	log *logrus.Logger
}

// NewSecurityLogger creates a logrus-backed security logger
func NewSecurityLogger(log *logrus.Logger) SecurityLogger {
	return &logSecurityLogger{log: log}
}

func (l *logSecurityLogger) Denied(_ context.Context, event DenialEvent) {
	l.log.WithFields(logrus.Fields{
		"event":       "authz_denied",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"actor_id":    event.ActorID,
		"kind":        string(event.Kind),
		"entity":      event.Entity,
		"resource_id": event.ResourceID,
		"reason":      event.Reason,
	}).Warn("access denied")
}

// NopSecurityLogger discards events. Useful in tests.
type NopSecurityLogger struct{}

func (NopSecurityLogger) Denied(context.Context, DenialEvent) {}
