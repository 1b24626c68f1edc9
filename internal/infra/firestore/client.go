// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// ClientOptions returns the GCP client options shared by Firestore, GCS,
// Secret Manager and Firebase. An empty credentialsFile means ADC.
func ClientOptions(credentialsFile string) []option.ClientOption {
	if f := strings.TrimSpace(credentialsFile); f != "" {
		return []option.ClientOption{option.WithCredentialsFile(f)}
	}
	return nil
}

// NewClient initializes a Firestore client.
func NewClient(ctx context.Context, projectID, credentialsFile string, logger logrus.FieldLogger) (*firestore.Client, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("firestore: project id is empty")
	}
	client, err := firestore.NewClient(ctx, projectID, ClientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"project":     projectID,
			"credentials": RedactPath(credentialsFile),
		}).Info("firestore connected")
	}
	return client, nil
}

// RedactPath keeps only the last segment of a credentials path.
func RedactPath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "ADC"
	}
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
