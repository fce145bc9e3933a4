package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page route (HTML template)
	mux.HandleFunc("/", s.app.PageHandler.ServePage("index.html", "home"))

	// API routes - Pipeline
	mux.HandleFunc("/api/pipeline/run", s.app.PipelineHandler.RunHandler)       // POST - run and return JSON
	mux.HandleFunc("/api/pipeline/export", s.app.PipelineHandler.ExportHandler) // GET - run and download CSV

	// API routes - Status
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler) // GET - application status

	return mux
}
