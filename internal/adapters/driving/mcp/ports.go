package mcp

import (
	"github.com/formpilot/formpilot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers form-fill questions from the knowledge base.
	Query driving.QueryService

	// Document manages knowledge base files.
	Document driving.DocumentService

	// Index exposes snapshot state for status reporting.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Document and Index are optional
	return nil
}
