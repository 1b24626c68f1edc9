package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"canteen/internal/application/usecase"
)

func TestLogNotifierWritesLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	n := NewLogNotifier(logger)
	n.Notify(context.Background(), usecase.Notification{
		Level:   usecase.LevelError,
		Message: "Failed to update order",
		Fields:  map[string]any{"id": "o1"},
		Err:     errors.New("offline"),
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if line["level"] != "error" || line["msg"] != "Failed to update order" {
		t.Fatalf("line = %v", line)
	}
	if line["id"] != "o1" || line["error"] != "offline" || line["component"] != "notifier" {
		t.Fatalf("fields missing: %v", line)
	}
}

func TestLogNotifierInfoForSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	NewLogNotifier(logger).Notify(context.Background(), usecase.Notification{Level: usecase.LevelSuccess, Message: "ok"})

	var line map[string]any
	_ = json.Unmarshal(buf.Bytes(), &line)
	if line["level"] != "info" || line["kind"] != "success" {
		t.Fatalf("line = %v", line)
	}
}
