package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/busebalkan99/design-checklist-vercel/internal/api/middleware"
	"github.com/busebalkan99/design-checklist-vercel/internal/gate"
)

// maxSaveBody caps the size of a save request body.
const maxSaveBody = 4 << 20

type Server struct {
	gate *gate.Gate
}

func NewServer(g *gate.Gate) *Server {
	return &Server{
		gate: g,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)
	mux.Handle("GET "+MetricsRoute, promhttp.Handler())

	// data routes, registered for every method so the gate reports wrong methods
	mux.Handle(LoadRoute, middleware.CORS(http.MethodGet)(http.HandlerFunc(s.handleLoad)))
	mux.Handle(SaveRoute, middleware.CORS(http.MethodPost)(http.HandlerFunc(s.handleSave)))

	// recovery runs inside the correlation and logging layers so a panic
	// still gets a correlated envelope and a request log line
	return middleware.CorrelationIDMiddleware(
		middleware.LoggingMiddleware(HealthCheckRoute)(
			middleware.RecoverMiddleware(
				mux)))
}
