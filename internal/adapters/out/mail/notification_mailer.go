// internal/adapters/out/mail/notification_mailer.go
package mail

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"canteen/internal/application/usecase"
)

const sendTimeout = 10 * time.Second

// NotificationMailer mails error notifications to the operator. Mail is sent
// in the background; Close waits for pending sends.
type NotificationMailer struct {
	client EmailClient
	from   string
	to     string
	logger logrus.FieldLogger

	wg sync.WaitGroup
}

func NewNotificationMailer(client EmailClient, from, to string, logger logrus.FieldLogger) *NotificationMailer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NotificationMailer{
		client: client,
		from:   strings.TrimSpace(from),
		to:     strings.TrimSpace(to),
		logger: logger.WithField("component", "notification_mailer"),
	}
}

var _ usecase.Notifier = (*NotificationMailer)(nil)

// Notify only mails LevelError; other levels are ignored.
func (m *NotificationMailer) Notify(ctx context.Context, n usecase.Notification) {
	if n.Level != usecase.LevelError || m.client == nil {
		return
	}
	subject, body := buildMessage(n)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()
		if err := m.client.Send(sendCtx, m.from, m.to, subject, body); err != nil {
			m.logger.WithError(err).WithField("subject", subject).Warn("notification mail failed")
		}
	}()
}

// Close blocks until every mail started by Notify has finished.
func (m *NotificationMailer) Close() {
	m.wg.Wait()
}

const maxSubjectRunes = 120

// truncateRunes cuts s to at most limit runes, ending in "..." when cut.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}

func buildMessage(n usecase.Notification) (string, string) {
	subject := truncateRunes("[Canteen Console] "+n.Message, maxSubjectRunes)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", n.Message)
	if !n.At.IsZero() {
		fmt.Fprintf(&b, "At: %s\n", n.At.UTC().Format(time.RFC3339))
	}
	if n.Err != nil {
		fmt.Fprintf(&b, "Error: %v\n", n.Err)
	}
	keys := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, n.Fields[k])
	}
	b.WriteString("\n-- \nCanteen Console")
	return subject, b.String()
}
