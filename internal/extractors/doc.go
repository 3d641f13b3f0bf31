// Package extractors provides format-specific text extraction from
// knowledge base documents. Each subpackage implements the
// driven.Extractor port for one or more document formats; the Registry
// selects the right one for a file.
package extractors
