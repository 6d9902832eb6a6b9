package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// maxMemoryUpload is how much of a multipart upload is buffered in memory
// before spilling to temporary files.
const maxMemoryUpload = 8 << 20

// ListPhotos handles GET /photos?userId=.
func (s *Server) ListPhotos(w http.ResponseWriter, r *http.Request) {
	listByQuery(s, w, r, "photo", "userId", s.store.GetPhotos)
}

func (s *Server) GetPhoto(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "photo", s.store.GetPhoto)
}

// UpdatePhoto handles PATCH /photos/{id}. Only the trip and caption change.
func (s *Server) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	patchByID(s, w, r, "photo", s.store.UpdatePhoto)
}

// DeletePhoto handles DELETE /photos/{id}.
func (s *Server) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "photo", s.store.DeletePhoto)
}

// UploadPhoto handles POST /photos, a multipart form with the image in
// "file" and the fields userId, tripId (optional) and caption (optional).
// The image is stored first; if the metadata insert then fails the stored
// image is removed again.
func (s *Server) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if s.blobs == nil {
		writeError(w, http.StatusServiceUnavailable, "storage_unavailable", "photo storage is not configured")
		return
	}
	if err := r.ParseMultipartForm(maxMemoryUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: expected a multipart form: %s", domain.ErrValidation, err.Error())
		}
		s.writeStoreError(w, r, err, "photo")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	in, err := photoFromForm(url.Values(r.MultipartForm.Value))
	if err != nil {
		s.writeStoreError(w, r, err, "photo")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "file must be an image")
		return
	}

	photo, err := s.storePhoto(r.Context(), in, contentType, file)
	if err != nil {
		s.writeStoreError(w, r, err, "photo")
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (s *Server) storePhoto(ctx context.Context, in domain.NewPhoto, contentType string, file multipart.File) (domain.Photo, error) {
	key, err := s.blobs.Save(ctx, fmt.Sprintf("users/%d", in.UserID), contentType, file)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("handler.Server.UploadPhoto: save blob: %w", err)
	}
	in.ImageURL = s.blobs.URL(key)

	photo, err := s.store.CreatePhoto(ctx, in)
	if err != nil {
		if derr := s.blobs.Delete(ctx, key); derr != nil {
			s.log.WarnContext(ctx, "orphaned photo blob", "key", key, "error", derr)
		}
		return domain.Photo{}, err
	}
	return photo, nil
}

func photoFromForm(values url.Values) (domain.NewPhoto, error) {
	userID, err := requiredID(values, "userId")
	if err != nil {
		return domain.NewPhoto{}, err
	}
	tripID, err := optionalID(values, "tripId")
	if err != nil {
		return domain.NewPhoto{}, err
	}
	in := domain.NewPhoto{UserID: userID, TripID: tripID}
	if caption := strings.TrimSpace(values.Get("caption")); caption != "" {
		in.Caption = &caption
	}
	return in, nil
}
