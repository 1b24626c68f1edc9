// internal/application/usecase/notification_port.go
package usecase

import (
	"context"
	"time"
)

// Level is the severity of a Notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification is a user-facing message about the outcome of an operation.
type Notification struct {
	Level   Level          `json:"level"`
	Message string         `json:"message"`
	At      time.Time      `json:"at"`
	Fields  map[string]any `json:"fields,omitempty"`
	Err     error          `json:"-"`
}

// Notifier is the notification sink. Delivery is best effort: sinks report
// their own failures and never fail the operation that triggered them.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Notifiers fans a notification out to every sink.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n Notification) {
	for _, s := range ns {
		if s != nil {
			s.Notify(ctx, n)
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
