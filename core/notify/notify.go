package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification for presentation purposes.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notification is a transient user-visible message emitted by store actions.
// It carries no behavior; the presentation layer decides how to render it.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a notification with a generated ID and timestamp.
func New(level Level, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// Notifier receives notifications emitted by store actions. Implementations
// must not block: emission is a side effect of the action, never a
// substitute for error propagation.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Success emits a success-level notification.
func Success(ctx context.Context, n Notifier, message string) {
	if n != nil {
		n.Notify(ctx, New(LevelSuccess, message))
	}
}

// Error emits an error-level notification.
func Error(ctx context.Context, n Notifier, message string) {
	if n != nil {
		n.Notify(ctx, New(LevelError, message))
	}
}

// Warning emits a warning-level notification.
func Warning(ctx context.Context, n Notifier, message string) {
	if n != nil {
		n.Notify(ctx, New(LevelWarning, message))
	}
}

// Nop is a Notifier that discards everything. Useful in tests and for
// actions whose failures are intentionally silent.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) {}
