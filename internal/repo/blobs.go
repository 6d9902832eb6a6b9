package repo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// BlobRemover deletes a stored photo blob by its key within the bucket.
type BlobRemover interface {
	Delete(ctx context.Context, key string) error
}

// photoBlobs removes the image behind a deleted photo. Removal is
// best-effort: a failure is logged and never fails the delete, since the
// metadata row is authoritative.
type photoBlobs struct {
	blobs  BlobRemover
	bucket string
	log    *slog.Logger
}

func (b photoBlobs) remove(ctx context.Context, p domain.Photo) {
	if b.blobs == nil {
		return
	}
	key := BlobKey(p.ImageURL, b.bucket)
	if err := b.blobs.Delete(ctx, key); err != nil {
		log := b.log
		if log == nil {
			log = slog.Default()
		}
		log.WarnContext(ctx, "photo blob cleanup failed", "photo_id", p.ID, "key", key, "error", err)
	}
}

// BlobKey derives the key of a photo blob from its stored image reference by
// stripping everything up to and including the bucket name. A reference that
// does not mention the bucket is returned unchanged.
func BlobKey(ref, bucket string) string {
	if bucket == "" {
		return ref
	}
	if i := strings.LastIndex(ref, "/"+bucket+"/"); i >= 0 {
		return ref[i+len(bucket)+2:]
	}
	return strings.TrimPrefix(ref, bucket+"/")
}
