// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Formpilot. It lets AI assistants query the local knowledge base the same
// way the browser extension does.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
