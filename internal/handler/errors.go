package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

const (
	codeNotFound   = "not_found"
	codeValidation = "validation_error"
	codeConflict   = "conflict"
	codeTooLarge   = "payload_too_large"
	codeInternal   = "internal_error"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeStoreError maps a storage or validation error to a response. what
// names the resource for not-found messages, e.g. "trip".
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, what string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, what+" not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, unwrapMessage(err, domain.ErrConflict))
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// unwrapMessage returns the text after the sentinel in a wrapped error, e.g.
// "repo.PgStore.CreateItinerary: conflict: trip 3 already has..." gives
// "trip 3 already has...". Backend detail after a conflict is not exposed.
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	i := strings.Index(msg, marker)
	if i < 0 {
		return sentinel.Error()
	}
	msg = msg[i+len(marker):]
	if sentinel == domain.ErrConflict && strings.Contains(msg, "SQLSTATE") {
		return "record already exists"
	}
	return msg
}

// decodeBody decodes a JSON request body into dst. Malformed JSON and
// unknown fields are validation errors; an oversized body keeps its
// *http.MaxBytesError so it maps to 413.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", domain.ErrValidation)
		}
		return fmt.Errorf("%w: malformed request body: %s", domain.ErrValidation, err.Error())
	}
	return nil
}

// validator is implemented by every domain insert and patch payload.
type validator interface {
	Validate() error
}

// decodeValid decodes the body into dst and validates it.
func decodeValid(r *http.Request, dst validator) error {
	if err := decodeBody(r, dst); err != nil {
		return err
	}
	return dst.Validate()
}
