package blob

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "photos")
	require.NoError(t, err)

	key, err := s.Save(context.Background(), "trips/3", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "trips/3/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_DeleteMissing(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "photos")
	require.NoError(t, err)

	err = s.Delete(context.Background(), "nope.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "photos")
	require.NoError(t, err)

	err = s.Delete(context.Background(), "../../etc/passwd")
	assert.ErrorContains(t, err, "path traversal")
}

func TestLocalStore_URL(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "photos")
	require.NoError(t, err)
	assert.Equal(t, "/files/photos/trips/1/a.jpg", s.URL("trips/1/a.jpg"))
}

func TestLocalStore_Handler(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "photos")
	require.NoError(t, err)
	key, err := s.Save(context.Background(), "users/2", "image/gif", strings.NewReader("gif-bytes"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"stored blob", s.URL(key), http.StatusOK},
		{"missing blob", s.URL("users/2/none.gif"), http.StatusNotFound},
		{"directory", s.Prefix() + "/users/2/", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, "gif-bytes", rec.Body.String())
			}
		})
	}
}

func TestNewKey(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		contentType string
		wantPrefix  string
		wantExt     string
	}{
		{"jpeg", "users/7", "image/jpeg", "users/7/", ".jpg"},
		{"unknown type falls back to jpg", "users/7", "application/octet-stream", "users/7/", ".jpg"},
		{"webp", "trips/2", "image/webp", "trips/2/", ".webp"},
		{"no prefix", "", "image/gif", "", ".gif"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := newKey(tc.prefix, tc.contentType)
			assert.True(t, strings.HasPrefix(key, tc.wantPrefix), key)
			assert.True(t, strings.HasSuffix(key, tc.wantExt), key)
			assert.NotContains(t, strings.TrimPrefix(key, tc.wantPrefix), "/")
		})
	}
}
