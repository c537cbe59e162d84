package domain

import "context"

// SessionRepository is the persistence port for drive sessions. Callers run
// Normalize immediately before Create or Update, so the derived fields are
// recomputed atomically with the timestamp change that triggered them.
type SessionRepository interface {
	Create(ctx context.Context, session *DriveSession) error
	Update(ctx context.Context, session *DriveSession) error
	Delete(ctx context.Context, id, userID string) error
	GetByID(ctx context.Context, id string) (*DriveSession, error)
	ListByUser(ctx context.Context, userID string) ([]DriveSession, error)
	InProgressByUser(ctx context.Context, userID string) (*DriveSession, error)
}

// UserContextRepository provides the owner's location context for night
// classification and calendar bucketing.
type UserContextRepository interface {
	UserContext(ctx context.Context, userID string) (UserContext, error)
}

// EventPublisher emits a domain event after a successful save or delete.
// Presentation concerns (live dashboards, reminders, push) subscribe to these
// events instead of hooking into the statistics or classification logic.
type EventPublisher interface {
	PublishSessionEvent(ctx context.Context, event SessionEvent) error
}

// SessionEvent describes one mutation of a drive session.
type SessionEvent struct {
	Type      string        `json:"type"` // session.started, session.completed, session.updated, session.deleted
	UserID    string        `json:"user_id"`
	SessionID string        `json:"session_id"`
	Session   *DriveSession `json:"session,omitempty"`
}

const (
	EventSessionStarted   = "session.started"
	EventSessionCompleted = "session.completed"
	EventSessionUpdated   = "session.updated"
	EventSessionDeleted   = "session.deleted"
)
