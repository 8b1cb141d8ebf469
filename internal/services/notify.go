package services

import (
	"context"
	"time"

	"github.com/desertthunder/musicadm/internal/shared"
)

// Level is the severity of a [Notification].
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Notification is a short user-facing message, the "toast" of the admin surfaces.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	Status    int
	CreatedAt time.Time
}

// NewNotification creates a [Notification] with a fresh ID stamped with the current time.
func NewNotification(level Level, message string) Notification {
	return Notification{
		ID:        shared.GenerateID(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// Notifier receives notifications raised by the client and the views.
//
// Implementations must not block for long: Notify runs on the request path.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) {}

// MultiNotifier fans a notification out to every notifier in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}
