// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// EmailClient abstracts the mail provider.
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// SendGridClient implements EmailClient interface
type SendGridClient struct {
	apiKey   string
	fromName string
	logger   logrus.FieldLogger
}

func NewSendGridClient(apiKey, fromName string, logger logrus.FieldLogger) *SendGridClient {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SendGridClient{apiKey: apiKey, fromName: fromName, logger: logger.WithField("component", "sendgrid")}
}

// Send sends an email using SendGrid
func (c *SendGridClient) Send(ctx context.Context, from, to, subject, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(c.fromName, from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body)),
	)

	response, err := sendgrid.NewSendClient(c.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		c.logger.WithFields(logrus.Fields{"status": response.StatusCode, "body": response.Body}).Error("sendgrid rejected mail")
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	c.logger.WithFields(logrus.Fields{"status": response.StatusCode, "to": to, "subject": subject}).Info("mail sent")
	return nil
}
