package api

import (
	"net/http"

	"github.com/busebalkan99/design-checklist-vercel/internal/api/presenter"
	"github.com/busebalkan99/design-checklist-vercel/internal/buildinfo"
)

// handleHealth reports liveness only. It never calls the identity provider or the store.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}
