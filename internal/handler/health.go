package handler

import (
	"net/http"

	"github.com/pkordes/wayfarer/backend/internal/repo"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// GetHealth handles GET /healthz. It reports which backend serves the routed
// entities and answers 503 when the remote backend does not respond.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Backend: repo.BackendMemory}
	if br, ok := s.store.(backendReporter); ok {
		resp.Backend = br.Backend()
		if err := br.Ping(r.Context()); err != nil {
			s.log.WarnContext(r.Context(), "health check failed", "error", err)
			resp.Status = "unavailable"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
