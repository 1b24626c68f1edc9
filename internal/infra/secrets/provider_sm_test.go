package secrets

import (
	"context"
	"errors"
	"testing"

	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

type fakeAccessor struct {
	names   []string
	payload string
	err     error
}

func (f *fakeAccessor) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.names = append(f.names, req.GetName())
	if f.err != nil {
		return nil, f.err
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Payload: &secretmanagerpb.SecretPayload{Data: []byte(f.payload)},
	}, nil
}

func TestProviderGet(t *testing.T) {
	fa := &fakeAccessor{payload: "  SG.key\n"}
	p := &Provider{client: fa, projectID: "canteen-dev"}

	v, err := p.Get(context.Background(), "sendgrid-api-key")
	if err != nil || v != "SG.key" {
		t.Fatalf("Get = %q, %v", v, err)
	}
	if fa.names[0] != "projects/canteen-dev/secrets/sendgrid-api-key/versions/latest" {
		t.Fatalf("name = %s", fa.names[0])
	}

	full := "projects/other/secrets/x/versions/3"
	if _, err := p.Get(context.Background(), full); err != nil || fa.names[1] != full {
		t.Fatalf("full name not passed through: %v %v", fa.names, err)
	}
}

func TestProviderErrors(t *testing.T) {
	if _, err := NewProvider(nil, "p").Get(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("nil client: %v", err)
	}

	p := &Provider{client: &fakeAccessor{payload: " "}, projectID: "p"}
	if _, err := p.Get(context.Background(), "x"); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("empty payload: %v", err)
	}

	boom := errors.New("permission denied")
	p = &Provider{client: &fakeAccessor{err: boom}, projectID: "p"}
	if _, err := p.Get(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("access error: %v", err)
	}
}
