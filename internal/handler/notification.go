package handler

import (
	"net/http"
)

// ListNotifications handles GET /notifications?userId=. Newest first.
func (s *Server) ListNotifications(w http.ResponseWriter, r *http.Request) {
	listByQuery(s, w, r, "notification", "userId", s.store.GetNotifications)
}

func (s *Server) GetNotification(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "notification", s.store.GetNotification)
}

// CreateNotification handles POST /notifications.
func (s *Server) CreateNotification(w http.ResponseWriter, r *http.Request) {
	createFromBody(s, w, r, "notification", s.store.CreateNotification)
}

// MarkNotificationRead handles POST /notifications/{id}/read.
func (s *Server) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, "notification")
		return
	}
	n, err := s.store.MarkNotificationAsRead(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "notification")
		return
	}
	writeJSON(w, http.StatusOK, n)
}
