package domain

import (
	"strings"
	"time"
)

// Rejection marks a form field the user declined a suggestion for.
// Rejections are scoped to a page and persist until explicitly cleared.
type Rejection struct {
	// FieldID is the opaque stable field identity.
	FieldID string

	// PageURL scopes the rejection to a page.
	PageURL string

	// RejectedAt is when the rejection was recorded.
	RejectedAt time.Time
}

// AcceptedAnswer is a value the user accepted for a field context.
// Accepted answers are global across pages and may pre-empt retrieval.
type AcceptedAnswer struct {
	// FieldKey is the normalised field context the answer is keyed by.
	FieldKey string

	// Answer is the accepted value.
	Answer string

	// UpdatedAt is when the answer was last written. Later writes win.
	UpdatedAt time.Time
}

// NormaliseFieldContext canonicalises a field context for use as the
// accepted-answer key: lowercased with whitespace collapsed. The same
// field described with different casing or spacing maps to one key.
func NormaliseFieldContext(fieldContext string) string {
	return strings.ToLower(strings.Join(strings.Fields(fieldContext), " "))
}
