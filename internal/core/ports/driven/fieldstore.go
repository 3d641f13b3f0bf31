package driven

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// FieldMemoryStore persists per-field rejections and accepted answers.
// All operations are total: unknown keys behave as "not rejected" and
// "no prior acceptance". Implementations serialise concurrent writers.
type FieldMemoryStore interface {
	// IsRejected reports whether a field on a page is rejected.
	IsRejected(ctx context.Context, fieldID, pageURL string) (bool, error)

	// AddRejection idempotently records a rejection.
	AddRejection(ctx context.Context, fieldID, pageURL string) error

	// ClearRejections removes all rejections for a page.
	ClearRejections(ctx context.Context, pageURL string) error

	// ClearAllRejections removes every rejection.
	ClearAllRejections(ctx context.Context) error

	// SaveAccepted upserts an accepted answer by its field key.
	// A later write for the same key wins.
	SaveAccepted(ctx context.Context, accepted domain.AcceptedAnswer) error

	// GetAccepted returns the accepted answer for a field key.
	// Returns domain.ErrNotFound when no acceptance exists.
	GetAccepted(ctx context.Context, fieldKey string) (*domain.AcceptedAnswer, error)
}
