// Package api exposes the query pipeline and knowledge base management
// over a small JSON HTTP surface. The browser extension is the primary
// caller; handlers hold no business logic.
package api
