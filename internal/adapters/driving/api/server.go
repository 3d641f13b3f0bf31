package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/formpilot/formpilot/internal/core/ports/driving"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Query       driving.QueryService       // Required
	Index       driving.IndexService       // Required
	Document    driving.DocumentService    // Required
	FieldMemory driving.FieldMemoryService // Required
	CORSOrigins []string                   // Allowed origins; empty allows any
}

// Server is the JSON API HTTP server.
type Server struct {
	handler http.Handler
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Query == nil {
		return nil, errors.New("query service is required")
	}
	if cfg.Index == nil {
		return nil, errors.New("index service is required")
	}
	if cfg.Document == nil {
		return nil, errors.New("document service is required")
	}
	if cfg.FieldMemory == nil {
		return nil, errors.New("field memory service is required")
	}

	h := &handlers{
		query:       cfg.Query,
		index:       cfg.Index,
		document:    cfg.Document,
		fieldMemory: cfg.FieldMemory,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/check-local", h.checkLocal)
	mux.HandleFunc("POST /api/rebuild", h.rebuild)
	mux.HandleFunc("POST /api/query", h.handleQuery)

	mux.HandleFunc("GET /api/documents", h.listDocuments)
	mux.HandleFunc("POST /api/documents", h.uploadDocument)
	mux.HandleFunc("DELETE /api/documents/{name}", h.deleteDocument)

	mux.HandleFunc("POST /api/accept", h.accept)
	mux.HandleFunc("POST /api/reject", h.reject)
	mux.HandleFunc("POST /api/rejections/clear", h.clearRejections)

	// Middleware stack (outermost first): CORS → Logging → Routes.
	// CORS is outermost so preflight OPTIONS never reaches the mux.
	var handler http.Handler = mux
	handler = loggingMiddleware(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)

	return &Server{handler: handler}, nil
}

// Handler returns the root HTTP handler, for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe runs the server on addr until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
