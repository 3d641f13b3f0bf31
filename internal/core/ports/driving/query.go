package driving

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// QueryService answers form-filling questions from the knowledge base.
type QueryService interface {
	// Query runs the embed, retrieve, generate pipeline for one question.
	// A grounded answer is returned when the knowledge base supports one;
	// otherwise the answer text is the canonical not-found sentinel.
	Query(ctx context.Context, req domain.QueryRequest) (domain.Answer, error)

	// CheckLocalModel reports whether the local model is reachable.
	// Exposed for UI status display.
	CheckLocalModel(ctx context.Context) bool
}
