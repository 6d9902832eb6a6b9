package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// LocalURLPrefix is the site path under which LocalStore blobs are served,
// kept apart from the API's own routes.
const LocalURLPrefix = "/files"

// LocalStore keeps blobs as files under basePath.
type LocalStore struct {
	basePath string
	bucket   string
}

// NewLocalStore creates basePath if needed and returns a store writing into it.
func NewLocalStore(basePath, bucket string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("blob.NewLocalStore: create photo directory: %w", err)
	}
	return &LocalStore{basePath: basePath, bucket: bucket}, nil
}

func (s *LocalStore) Save(_ context.Context, prefix, contentType string, r io.Reader) (string, error) {
	key := newKey(prefix, contentType)
	filePath, err := s.safeJoin(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return "", fmt.Errorf("blob.LocalStore.Save: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("blob.LocalStore.Save: create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return "", fmt.Errorf("blob.LocalStore.Save: write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return "", fmt.Errorf("blob.LocalStore.Save: close file: %w", err)
	}
	return key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("blob.LocalStore.Delete: %q: %w", key, ErrNotFound)
		}
		return fmt.Errorf("blob.LocalStore.Delete: %w", err)
	}
	return nil
}

// URL returns a site-relative reference: "/files/<bucket>/<key>".
func (s *LocalStore) URL(key string) string {
	return objectURL(LocalURLPrefix, s.bucket, key)
}

// Prefix is the path Handler must be mounted under.
func (s *LocalStore) Prefix() string {
	return LocalURLPrefix + "/" + s.bucket
}

// Handler serves stored blobs by the path URL returns. Directory listings
// are not served.
func (s *LocalStore) Handler() http.Handler {
	files := http.StripPrefix(s.Prefix(), http.FileServer(http.Dir(s.basePath)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *LocalStore) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt: %q", key)
	}
	return absPath, nil
}

var _ Store = (*LocalStore)(nil)
