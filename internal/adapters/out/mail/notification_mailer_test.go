package mail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"canteen/internal/application/usecase"
)

type sentMail struct{ from, to, subject, body string }

type fakeClient struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeClient) Send(_ context.Context, from, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{from, to, subject, body})
	return f.err
}

func TestNotificationMailerSendsErrorsOnly(t *testing.T) {
	client := &fakeClient{}
	m := NewNotificationMailer(client, "console@example.com", "ops@example.com", nil)
	ctx := context.Background()

	m.Notify(ctx, usecase.Notification{Level: usecase.LevelSuccess, Message: "fine"})
	m.Notify(ctx, usecase.Notification{
		Level:   usecase.LevelError,
		Message: "Error updating available items",
		At:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Err:     errors.New("deadline exceeded"),
		Fields:  map[string]any{"failed": "b", "written": []string{"a"}},
	})
	m.Close()

	if len(client.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(client.sent))
	}
	got := client.sent[0]
	if got.from != "console@example.com" || got.to != "ops@example.com" {
		t.Fatalf("addresses = %+v", got)
	}
	if got.subject != "[Canteen Console] Error updating available items" {
		t.Fatalf("subject = %q", got.subject)
	}
	for _, want := range []string{"2024-03-01T09:00:00Z", "deadline exceeded", "failed: b", "written: [a]"} {
		if !strings.Contains(got.body, want) {
			t.Fatalf("body missing %q:\n%s", want, got.body)
		}
	}
}

func TestNotificationMailerSwallowsSendErrors(t *testing.T) {
	client := &fakeClient{err: errors.New("quota")}
	m := NewNotificationMailer(client, "a@example.com", "b@example.com", nil)
	m.Notify(context.Background(), usecase.Notification{Level: usecase.LevelError, Message: "x"})
	m.Close()
	if len(client.sent) != 1 {
		t.Fatalf("send not attempted")
	}
}

func TestSendGridClientRejectsMissingConfig(t *testing.T) {
	c := NewSendGridClient("", "Canteen", nil)
	if err := c.Send(context.Background(), "a@example.com", "b@example.com", "s", "b"); err == nil {
		t.Fatalf("expected error for empty api key")
	}
	c = NewSendGridClient("key", "Canteen", nil)
	if err := c.Send(context.Background(), "", "b@example.com", "s", "b"); err == nil {
		t.Fatalf("expected error for empty from")
	}
}

func TestBuildMessageTruncatesSubjectByRunes(t *testing.T) {
	msg := strings.Repeat("चाय ", 60)
	subject, body := buildMessage(usecase.Notification{Level: usecase.LevelError, Message: msg})

	if !utf8.ValidString(subject) {
		t.Fatalf("subject is not valid UTF-8: %q", subject)
	}
	if n := utf8.RuneCountInString(subject); n != maxSubjectRunes {
		t.Fatalf("subject runes = %d, want %d", n, maxSubjectRunes)
	}
	if !strings.HasSuffix(subject, "...") || !strings.Contains(body, msg) {
		t.Fatalf("subject = %q", subject)
	}

	short, _ := buildMessage(usecase.Notification{Message: "Error loading items"})
	if short != "[Canteen Console] Error loading items" {
		t.Fatalf("short subject = %q", short)
	}
}
