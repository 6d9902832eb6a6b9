package handler

import (
	"context"
	"net/http"
)

// payload is a pointer to a decodable, validatable request body.
type payload[T any] interface {
	*T
	validator
}

// getByID serves GET /<resource>/{id}.
func getByID[T any](s *Server, w http.ResponseWriter, r *http.Request, what string,
	get func(context.Context, int64) (T, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	v, err := get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// createFromBody serves POST /<resource> with the payload P.
func createFromBody[P any, PP payload[P], T any](s *Server, w http.ResponseWriter, r *http.Request, what string,
	create func(context.Context, P) (T, error)) {
	var in P
	if err := decodeValid(r, PP(&in)); err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	v, err := create(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// patchByID serves PATCH /<resource>/{id} with the partial update P.
func patchByID[P any, PP payload[P], T any](s *Server, w http.ResponseWriter, r *http.Request, what string,
	update func(context.Context, int64, P) (T, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	var p P
	if err := decodeValid(r, PP(&p)); err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	v, err := update(r.Context(), id, p)
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// deleteByID serves DELETE /<resource>/{id}: 204 when removed, 404 when the
// id was unknown.
func deleteByID(s *Server, w http.ResponseWriter, r *http.Request, what string,
	remove func(context.Context, int64) (bool, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	ok, err := remove(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, what+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listByPath serves GET /<parent>/{id}/<children>.
func listByPath[T any](s *Server, w http.ResponseWriter, r *http.Request, what string,
	list func(context.Context, int64) ([]T, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	writeList(s, w, r, what, func() ([]T, error) { return list(r.Context(), id) })
}

// listByQuery serves GET /<resource>?<param>=<id>.
func listByQuery[T any](s *Server, w http.ResponseWriter, r *http.Request, what, param string,
	list func(context.Context, int64) ([]T, error)) {
	id, err := requiredID(r.URL.Query(), param)
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	writeList(s, w, r, what, func() ([]T, error) { return list(r.Context(), id) })
}

// writeList writes the result of list, always as a JSON array.
func writeList[T any](s *Server, w http.ResponseWriter, r *http.Request, what string, list func() ([]T, error)) {
	v, err := list()
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	if v == nil {
		v = []T{}
	}
	writeJSON(w, http.StatusOK, v)
}
