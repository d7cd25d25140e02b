package server

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		s.logger.Error("specification document check failed", slog.String("error", err.Error()))
		renderErrorJSON(w, "Specification document is unavailable", http.StatusServiceUnavailable)
		return
	}
	renderSuccessJSON(w, "Health endpoint is working", http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	renderSuccessJSON(w, "Ready endpoint is working", http.StatusOK)
}

// handleDebugViewer exposes the handle of the most recent page load.
func (s *Server) handleDebugViewer(w http.ResponseWriter, r *http.Request) {
	handle := s.slot.Load()
	if handle == nil {
		renderErrorJSON(w, "No viewer has been bootstrapped yet", http.StatusNotFound)
		return
	}
	renderJSON(w, handle, http.StatusOK)
}
