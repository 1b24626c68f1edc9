// internal/adapters/out/gcs/image_url_resolver.go
package gcs

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	gcscommon "canteen/internal/adapters/out/gcs/common"
	"canteen/internal/application/usecase"
)

// ImageURLResolver resolves stored item image references for responses.
//
// A reference can be:
//   - http(s)://... outside GCS (returned as-is)
//   - gs://bucket/object or https://storage.googleapis.com/... (parsed)
//   - a relative path such as "./image/tea.jpg" (object in Bucket)
//
// GCS objects get a V4 signed URL when a client and a TTL are configured,
// a public URL otherwise. Relative paths are returned untouched when no
// bucket is configured; the web client serves them itself.
type ImageURLResolver struct {
	Client    *storage.Client
	Bucket    string
	SignedTTL time.Duration

	now    func() time.Time
	logger logrus.FieldLogger
}

func NewImageURLResolver(client *storage.Client, bucket string, signedTTL time.Duration, logger logrus.FieldLogger) *ImageURLResolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ImageURLResolver{
		Client:    client,
		Bucket:    strings.TrimSpace(bucket),
		SignedTTL: signedTTL,
		now:       time.Now,
		logger:    logger.WithField("component", "image_url_resolver"),
	}
}

var _ usecase.ImageResolver = (*ImageURLResolver)(nil)

func (r *ImageURLResolver) ResolveImage(_ context.Context, ref string) string {
	p := strings.TrimSpace(ref)
	if p == "" {
		return ""
	}

	if b, obj, ok := gcscommon.ParseGCSURL(p); ok {
		return r.objectURL(b, obj)
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "data:") {
		return p
	}

	if r.Bucket == "" {
		return p
	}
	obj, ok := gcscommon.CleanObjectPath(p)
	if !ok {
		return p
	}
	return r.objectURL(r.Bucket, obj)
}

func (r *ImageURLResolver) objectURL(bucket, obj string) string {
	if r.Client != nil && r.SignedTTL > 0 {
		u, err := r.Client.Bucket(bucket).SignedURL(obj, &storage.SignedURLOptions{
			Method:  "GET",
			Scheme:  storage.SigningSchemeV4,
			Expires: r.now().Add(r.SignedTTL),
		})
		if err == nil {
			return u
		}
		r.logger.WithError(err).WithFields(logrus.Fields{"bucket": bucket, "object": obj}).Warn("sign url failed, using public url")
	}
	return gcscommon.GCSPublicURL(bucket, obj, r.Bucket)
}
