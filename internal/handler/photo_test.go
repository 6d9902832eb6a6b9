package handler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/backend/internal/blob"
	"github.com/pkordes/wayfarer/backend/internal/domain"
	"github.com/pkordes/wayfarer/backend/internal/repo"
	"github.com/pkordes/wayfarer/backend/testutil"
)

// fakeBlobs is a test double for blob.Store. Set only the fields your test
// needs; Save defaults to succeeding with a fixed key.
type fakeBlobs struct {
	saved   map[string]string
	deleted []string
	saveErr error
}

func (f *fakeBlobs) Save(_ context.Context, prefix, _ string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := prefix + "/img.jpg"
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	f.saved[key] = string(b)
	return key, nil
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobs) URL(key string) string { return "https://cdn.example.com/photos/" + key }

// compile-time check: fakeBlobs must satisfy blob.Store.
var _ blob.Store = (*fakeBlobs)(nil)

// multipartRequest builds a POST /photos upload.
func multipartRequest(t *testing.T, fields map[string]string, contentType, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if contentType != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadPhoto_201(t *testing.T) {
	blobs := &fakeBlobs{}
	h := newHTTPHandler(newMemStore(t), blobs)

	req := multipartRequest(t, map[string]string{"userId": "3", "tripId": "8", "caption": "sunset"}, "image/jpeg", "jpeg-bytes")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	photo := decode[domain.Photo](t, rec)
	assert.Equal(t, int64(3), photo.UserID)
	require.NotNil(t, photo.TripID)
	assert.Equal(t, int64(8), *photo.TripID)
	assert.Equal(t, "sunset", *photo.Caption)
	assert.Equal(t, "https://cdn.example.com/photos/users/3/img.jpg", photo.ImageURL)
	assert.Equal(t, "jpeg-bytes", blobs.saved["users/3/img.jpg"])

	rec = do(t, h, http.MethodGet, "/trips/8/photos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Photo](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/photos?userId=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Photo](t, rec), 1)
}

func TestUploadPhoto_WithLocalStore_ServedThenDeleted(t *testing.T) {
	local, err := blob.NewLocalStore(t.TempDir(), "photos")
	require.NoError(t, err)
	store, err := repo.NewMemStore(testutil.FixedClock(), nil, repo.WithPhotoBlobs(local, "photos", discard))
	require.NoError(t, err)
	h := newHTTPHandler(store, local)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, map[string]string{"userId": "1"}, "image/png", "png"))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	photo := decode[domain.Photo](t, rec)
	assert.True(t, strings.HasPrefix(photo.ImageURL, "/files/photos/users/1/"), photo.ImageURL)
	assert.True(t, strings.HasSuffix(photo.ImageURL, ".png"), photo.ImageURL)
	assert.Nil(t, photo.TripID)

	rec = do(t, h, http.MethodGet, photo.ImageURL, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/photos/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, photo.ImageURL, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "blob removed with the photo")
}

func TestUploadPhoto_422(t *testing.T) {
	tests := []struct {
		name        string
		fields      map[string]string
		contentType string
	}{
		{"missing user", map[string]string{}, "image/jpeg"},
		{"bad trip id", map[string]string{"userId": "1", "tripId": "x"}, "image/jpeg"},
		{"missing file", map[string]string{"userId": "1"}, ""},
		{"not an image", map[string]string{"userId": "1"}, "application/pdf"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blobs := &fakeBlobs{}
			h := newHTTPHandler(newMemStore(t), blobs)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, multipartRequest(t, tc.fields, tc.contentType, "data"))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Empty(t, blobs.saved)
		})
	}
}

func TestUploadPhoto_NotMultipart(t *testing.T) {
	rec := do(t, newHTTPHandler(newMemStore(t), &fakeBlobs{}), http.MethodPost, "/photos", map[string]any{"userId": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUploadPhoto_BlobFailure_500(t *testing.T) {
	blobs := &fakeBlobs{saveErr: errors.New("bucket unavailable")}
	store := newMemStore(t)
	h := newHTTPHandler(store, blobs)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, map[string]string{"userId": "1"}, "image/jpeg", "x"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	photos, err := store.GetPhotos(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, photos, "no metadata without a stored image")
}

func TestUploadPhoto_NoBlobStore_503(t *testing.T) {
	h := newHTTPHandler(newMemStore(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, map[string]string{"userId": "1"}, "image/jpeg", "x"))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPhotos_PatchAndDelete(t *testing.T) {
	store := newMemStore(t)
	h := newHTTPHandler(store, &fakeBlobs{})
	_, err := store.CreatePhoto(context.Background(), domain.NewPhoto{UserID: 1, ImageURL: "/photos/a.jpg"})
	require.NoError(t, err)

	rec := do(t, h, http.MethodPatch, "/photos/1", map[string]any{"caption": "beach"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "beach", *decode[domain.Photo](t, rec).Caption)

	rec = do(t, h, http.MethodPatch, "/photos/1", map[string]any{"tripId": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, decode[domain.Photo](t, rec).TripID)

	rec = do(t, h, http.MethodPatch, "/photos/1", map[string]any{"tripId": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	detached := decode[domain.Photo](t, rec)
	assert.Nil(t, detached.TripID, "null detaches the photo from its trip")
	assert.Equal(t, "beach", *detached.Caption)

	rec = do(t, h, http.MethodPatch, "/photos/1", map[string]any{"imageUrl": "/photos/b.jpg"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "image is immutable")

	rec = do(t, h, http.MethodDelete, "/photos/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/photos/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
