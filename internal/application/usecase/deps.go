// internal/application/usecase/deps.go
package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// writeTimeout bounds a store write once it no longer follows its caller.
const writeTimeout = 30 * time.Second

// detach returns a context that ignores the caller's cancellation, so a
// write that has started still runs to completion or to writeTimeout.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
}

// Deps are the optional collaborators shared by the use cases. Zero fields
// fall back to no-op implementations.
type Deps struct {
	Notifier Notifier
	Metrics  Metrics
	Clock    Clock
	Logger   logrus.FieldLogger
}

func (d Deps) normalize(component string) Deps {
	d.Notifier = orNop(d.Notifier)
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	if d.Clock == nil {
		d.Clock = systemClock{}
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	d.Logger = d.Logger.WithField("component", component)
	return d
}

func (d Deps) success(ctx context.Context, msg string, fields map[string]any) {
	d.Notifier.Notify(ctx, Notification{Level: LevelSuccess, Message: msg, At: d.Clock.Now(), Fields: fields})
}

func (d Deps) failure(ctx context.Context, msg string, err error, fields map[string]any) {
	d.Logger.WithFields(logrus.Fields(fields)).WithError(err).Warn(msg)
	full := msg
	if err != nil {
		full = msg + ": " + err.Error()
	}
	d.Notifier.Notify(ctx, Notification{Level: LevelError, Message: full, At: d.Clock.Now(), Fields: fields, Err: err})
}
