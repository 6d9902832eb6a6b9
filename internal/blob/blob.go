// Package blob stores uploaded photo files. The S3 store talks to any
// S3-compatible service (Supabase storage, MinIO, AWS); the local store
// writes to disk and is used when no S3 endpoint is configured.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/pkordes/wayfarer/backend/internal/config"
)

// ErrNotFound is returned by Delete when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Store saves and removes photo blobs.
type Store interface {
	// Save writes r under a new key beginning with prefix and returns the key.
	Save(ctx context.Context, prefix, contentType string, r io.Reader) (string, error)
	// Delete removes the blob stored under key.
	Delete(ctx context.Context, key string) error
	// URL returns the reference stored on the photo record for key. It always
	// contains "/<bucket>/<key>" so the key can be recovered from it.
	URL(key string) string
}

// NewFromConfig returns the S3 store when it is fully configured, otherwise a
// local store rooted at cfg.PhotoLocalPath.
func NewFromConfig(ctx context.Context, cfg config.Config) (Store, error) {
	if cfg.S3Enabled() {
		return NewS3Store(ctx, S3Options{
			Endpoint:        cfg.StorageEndpoint,
			Region:          cfg.StorageRegion,
			AccessKeyID:     cfg.StorageAccessKeyID,
			SecretAccessKey: cfg.StorageSecretAccessKey,
			Bucket:          cfg.StorageBucket,
			PublicURL:       cfg.StoragePublicURL,
		})
	}
	return NewLocalStore(cfg.PhotoLocalPath, cfg.StorageBucket)
}

// newKey builds "<prefix>/<uuid><ext>".
func newKey(prefix, contentType string) string {
	name := uuid.NewString() + extFor(contentType)
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	default:
		return ".jpg"
	}
}

func objectURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", base, bucket, key)
}
