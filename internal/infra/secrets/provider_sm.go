// internal/infra/secrets/provider_sm.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

var (
	ErrNotConfigured = errors.New("secrets: provider not configured")
	ErrEmptySecret   = errors.New("secrets: empty payload")
)

// accessor is the part of *secretmanager.Client the provider uses.
type accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// Provider reads string secrets from Secret Manager.
type Provider struct {
	client    accessor
	projectID string
}

// NewProvider wraps an existing client; the caller owns and closes it.
func NewProvider(client *secretmanager.Client, projectID string) *Provider {
	if client == nil {
		return &Provider{projectID: strings.TrimSpace(projectID)}
	}
	return &Provider{client: client, projectID: strings.TrimSpace(projectID)}
}

// Name builds the resource name of a secret version. A secretID that is
// already a full resource name is returned unchanged.
func (p *Provider) Name(secretID, version string) string {
	id := strings.TrimSpace(secretID)
	if strings.HasPrefix(id, "projects/") {
		return id
	}
	ver := strings.TrimSpace(version)
	if ver == "" {
		ver = "latest"
	}
	return "projects/" + p.projectID + "/secrets/" + id + "/versions/" + ver
}

// Get returns the trimmed payload of the latest version of secretID.
func (p *Provider) Get(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.client == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(secretID) == "" {
		return "", fmt.Errorf("%w: secret id is empty", ErrNotConfigured)
	}
	if p.projectID == "" && !strings.HasPrefix(strings.TrimSpace(secretID), "projects/") {
		return "", fmt.Errorf("%w: project id is empty", ErrNotConfigured)
	}

	name := p.Name(secretID, "")
	resp, err := p.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secrets: access %s: %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("%w (%s)", ErrEmptySecret, name)
	}
	v := strings.TrimSpace(string(resp.Payload.Data))
	if v == "" {
		return "", fmt.Errorf("%w (%s)", ErrEmptySecret, name)
	}
	return v, nil
}
