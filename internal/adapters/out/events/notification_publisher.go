// internal/adapters/out/events/notification_publisher.go
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/sirupsen/logrus"

	"canteen/internal/application/usecase"
)

const publishTimeout = 30 * time.Second

// Message is the JSON body published for each notification.
type Message struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	At      time.Time      `json:"at"`
	Source  string         `json:"source"`
	Error   string         `json:"error,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NotificationPublisher forwards every notification to a Pub/Sub topic.
type NotificationPublisher struct {
	topic  *pubsub.Topic
	source string
	logger logrus.FieldLogger

	wg sync.WaitGroup
}

var _ usecase.Notifier = (*NotificationPublisher)(nil)

func NewNotificationPublisher(topic *pubsub.Topic, source string, logger logrus.FieldLogger) *NotificationPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NotificationPublisher{
		topic:  topic,
		source: strings.TrimSpace(source),
		logger: logger.WithField("component", "notification_publisher"),
	}
}

// EnsureTopic returns the named topic, creating it when missing.
func EnsureTopic(ctx context.Context, client *pubsub.Client, name string) (*pubsub.Topic, error) {
	if client == nil {
		return nil, errors.New("pubsub client is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("topic is required")
	}
	t := client.Topic(name)
	ok, err := t.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %q: %w", name, err)
	}
	if ok {
		return t, nil
	}
	t, err = client.CreateTopic(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create topic %q: %w", name, err)
	}
	return t, nil
}

func (p *NotificationPublisher) Notify(ctx context.Context, n usecase.Notification) {
	if p == nil || p.topic == nil {
		return
	}
	msg := Message{
		Level:   string(n.Level),
		Message: n.Message,
		At:      n.At.UTC(),
		Source:  p.source,
		Fields:  n.Fields,
	}
	if n.Err != nil {
		msg.Error = n.Err.Error()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		p.logger.WithError(err).Warn("encode notification")
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	result := p.topic.Publish(pubCtx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"level": msg.Level, "source": p.source},
	})

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		id, err := result.Get(pubCtx)
		if err != nil {
			p.logger.WithError(err).WithField("level", msg.Level).Warn("notification publish failed")
			return
		}
		p.logger.WithField("messageId", id).Debug("notification published")
	}()
}

// Close waits for outstanding publishes and stops the topic's batcher.
func (p *NotificationPublisher) Close() {
	if p == nil || p.topic == nil {
		return
	}
	p.wg.Wait()
	p.topic.Stop()
}
