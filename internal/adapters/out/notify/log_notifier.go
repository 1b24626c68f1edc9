// internal/adapters/out/notify/log_notifier.go
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"canteen/internal/application/usecase"
)

// LogNotifier writes notifications to the structured log. It is always
// wired so that every outcome leaves a trace.
type LogNotifier struct {
	logger logrus.FieldLogger
}

func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogNotifier{logger: logger.WithField("component", "notifier")}
}

var _ usecase.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Notify(_ context.Context, note usecase.Notification) {
	entry := n.logger.WithFields(logrus.Fields(note.Fields)).WithField("kind", string(note.Level))
	if !note.At.IsZero() {
		entry = entry.WithField("at", note.At)
	}
	switch note.Level {
	case usecase.LevelError:
		if note.Err != nil {
			entry = entry.WithError(note.Err)
		}
		entry.Error(note.Message)
	default:
		entry.Info(note.Message)
	}
}
