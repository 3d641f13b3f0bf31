// Package driving provides interfaces for external actors
// (primary/inbound ports). The CLI, HTTP and MCP adapters depend on
// these interfaces; the core services implement them.
package driving
