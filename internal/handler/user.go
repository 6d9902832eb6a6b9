package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// SyncUser handles POST /users/sync. Called after each sign-in: it creates
// the account on first sight of a uid (201) and otherwise refreshes the
// profile fields that were supplied (200).
func (s *Server) SyncUser(w http.ResponseWriter, r *http.Request) {
	var in domain.NewUser
	if err := decodeValid(r, &in); err != nil {
		s.writeStoreError(w, r, err, "user")
		return
	}

	existing, err := s.store.GetUserByUID(r.Context(), in.UID)
	if errors.Is(err, domain.ErrNotFound) {
		created, cerr := s.store.CreateUser(r.Context(), in)
		if cerr == nil {
			writeJSON(w, http.StatusCreated, created)
			return
		}
		if !errors.Is(cerr, domain.ErrConflict) {
			s.writeStoreError(w, r, cerr, "user")
			return
		}
		// A concurrent sign-in with the same uid created the account first.
		existing, err = s.store.GetUserByUID(r.Context(), in.UID)
	}
	switch {
	case err != nil:
		s.writeStoreError(w, r, err, "user")
	case in.Patch().Empty():
		writeJSON(w, http.StatusOK, existing)
	default:
		updated, err := s.store.UpdateUser(r.Context(), existing.ID, in.Patch())
		if err != nil {
			s.writeStoreError(w, r, err, "user")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// GetUser handles GET /users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "user", s.store.GetUser)
}

// UpdateUser handles PATCH /users/{id}.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	patchByID(s, w, r, "user", s.store.UpdateUser)
}
