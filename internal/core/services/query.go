package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
	"github.com/formpilot/formpilot/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// probeTimeout bounds the local model reachability check so a hung
// local service cannot stall the remote fallback path.
const probeTimeout = 2 * time.Second

// Generation parameters for form-field answers: short, near-deterministic.
const (
	answerMaxTokens   = 100
	answerTemperature = 0.3
)

// QueryService routes a question through embed, retrieve and generate.
// The local and remote LLM services are both optional; with neither
// configured the service degrades to pattern extraction over the
// retrieved chunks.
type QueryService struct {
	index       driving.IndexService
	embedder    driven.EmbeddingService
	localLLM    driven.LLMService
	remoteLLM   driven.LLMService
	fieldMemory driving.FieldMemoryService
	retriever   Retriever
	settings    *domain.AppSettings
}

// NewQueryService creates a query service.
// localLLM, remoteLLM and fieldMemory may be nil.
func NewQueryService(
	index driving.IndexService,
	embedder driven.EmbeddingService,
	localLLM driven.LLMService,
	remoteLLM driven.LLMService,
	fieldMemory driving.FieldMemoryService,
	retriever Retriever,
	settings *domain.AppSettings,
) *QueryService {
	if settings == nil {
		settings = domain.DefaultAppSettings()
	}
	if retriever == nil {
		retriever = NewCosineRetriever()
	}
	return &QueryService{
		index:       index,
		embedder:    embedder,
		localLLM:    localLLM,
		remoteLLM:   remoteLLM,
		fieldMemory: fieldMemory,
		retriever:   retriever,
		settings:    settings,
	}
}

// CheckLocalModel reports whether the local model is reachable.
func (s *QueryService) CheckLocalModel(ctx context.Context) bool {
	if s.localLLM == nil {
		return false
	}
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return s.localLLM.Ping(probeCtx) == nil
}

// Query runs the embed, retrieve, generate pipeline for one question.
func (s *QueryService) Query(ctx context.Context, req domain.QueryRequest) (domain.Answer, error) {
	if strings.TrimSpace(req.Text) == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	queryID := uuid.New().String()
	logger.Section("Query")
	logger.Debug("[%s] Question: %q field=%q page=%q", queryID, req.Text, req.FieldID, req.PageURL)

	// Rejected fields never reach the generator.
	if s.fieldMemory != nil && req.FieldID != "" &&
		s.fieldMemory.IsRejected(ctx, req.FieldID, req.PageURL) {
		logger.Debug("[%s] Field is rejected, suppressing", queryID)
		return domain.Answer{Text: domain.NotFoundAnswer, Source: domain.AnswerSuppressed}, nil
	}

	// A previously accepted answer pre-empts retrieval entirely.
	if s.fieldMemory != nil && req.FieldContext != "" {
		if answer, ok := s.fieldMemory.AcceptedFor(ctx, req.FieldContext); ok {
			logger.Debug("[%s] Replaying accepted answer", queryID)
			return domain.Answer{
				Text:       answer,
				Source:     domain.AnswerFromMemory,
				Confidence: 1.0,
			}, nil
		}
	}

	snap := s.index.Snapshot()
	if snap.Empty() {
		logger.Debug("[%s] Empty index, short-circuiting to sentinel", queryID)
		return domain.Answer{Text: domain.NotFoundAnswer}, nil
	}

	queryVec, err := s.embedder.Embed(ctx, enhanceQuery(req))
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	topK := s.settings.Index.TopK
	if topK < 1 {
		topK = 1
	}
	hits, err := s.retriever.Retrieve(snap, queryVec, topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieving context: %w", err)
	}

	if len(hits) == 0 || hits[0].Similarity < s.settings.Index.SimilarityFloor {
		logger.Debug("[%s] No supporting context, short-circuiting to sentinel", queryID)
		return domain.Answer{Text: domain.NotFoundAnswer}, nil
	}

	logger.Debug("[%s] Retrieved %d chunks, top similarity %.3f from %s",
		queryID, len(hits), hits[0].Similarity, hits[0].Record.Source)

	answer, source, err := s.generate(ctx, buildPrompt(req, hits), hits, req)
	if err != nil {
		return domain.Answer{}, err
	}

	result := domain.Answer{
		Text:       normaliseAnswer(answer),
		Source:     source,
		Confidence: hits[0].Similarity,
	}
	if !result.NotFound() {
		result.SourceFile = hits[0].Record.Source
	}

	logger.Debug("[%s] Answer via %s: %q", queryID, result.Source, result.Text)
	return result, nil
}

// generate routes the prompt to a model. Preference order: local model
// when allowed and reachable, remote as configured fallback, pattern
// extraction when no model is available at all.
func (s *QueryService) generate(
	ctx context.Context, prompt string, hits []domain.RetrievedChunk, req domain.QueryRequest,
) (string, domain.AnswerSource, error) {
	route := s.settings.LLM.Route
	opts := driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	}

	if route.AllowsLocal() && s.localLLM != nil && s.CheckLocalModel(ctx) {
		answer, err := s.localLLM.Generate(ctx, prompt, opts)
		if err == nil {
			return answer, domain.AnswerFromLocal, nil
		}
		logger.Warn("Local generation failed: %v", err)

		if route.AllowsRemote() && s.remoteLLM != nil {
			answer, err = s.remoteLLM.Generate(ctx, prompt, opts)
			if err != nil {
				return "", "", fmt.Errorf("%w: remote fallback: %v", domain.ErrGenerationFailed, err)
			}
			return answer, domain.AnswerFromRemote, nil
		}
		return "", "", fmt.Errorf("%w: local: %v", domain.ErrGenerationFailed, err)
	}

	if route.AllowsRemote() && s.remoteLLM != nil {
		// One attempt only; quota, auth and network errors surface.
		answer, err := s.remoteLLM.Generate(ctx, prompt, opts)
		if err != nil {
			return "", "", fmt.Errorf("%w: remote: %v", domain.ErrGenerationFailed, err)
		}
		return answer, domain.AnswerFromRemote, nil
	}

	// No model reachable: fall back to pattern extraction over the
	// retrieved chunks.
	logger.Info("No model available, using pattern extraction")
	return extractAnswer(req, hits), domain.AnswerFromExtraction, nil
}

// enhanceQuery prefixes the question with the field context so that the
// query embedding leans toward the field being filled.
func enhanceQuery(req domain.QueryRequest) string {
	if req.FieldContext == "" {
		return req.Text
	}
	return req.FieldContext + ": " + req.Text
}

// answerPrompt instructs the model to emit a bare form-field value or
// the exact not-found sentinel.
const answerPrompt = `You are a form-filling assistant. Based on the provided context, answer the question concisely.

Context:
%s

Field Context: %s
Question: %s%s

Instructions:
- Provide ONLY the answer for the form field
- Keep it brief (1-3 words for short fields, 1-2 sentences for text areas)
- If the user provided partial input, use it as a hint to correct or complete the answer
- If information is not in context, respond with exactly "%s"
- No explanations or extra text

Answer:`

// buildPrompt constructs the grounded prompt from ranked chunks.
// Chunks arrive deduplicated by fingerprint from the snapshot.
func buildPrompt(req domain.QueryRequest, hits []domain.RetrievedChunk) string {
	pieces := make([]string, len(hits))
	for i, hit := range hits {
		pieces[i] = hit.Record.Text
	}
	context := strings.Join(pieces, "\n\n")

	fieldContext := req.FieldContext
	if fieldContext == "" {
		fieldContext = "General field"
	}

	hint := ""
	if req.PartialInput != "" {
		hint = fmt.Sprintf("\nUser's Partial Input (as hint): %s", req.PartialInput)
	}

	return fmt.Sprintf(answerPrompt, context, fieldContext, req.Text, hint, domain.NotFoundAnswer)
}

// normaliseAnswer trims the model reply and collapses any reply that
// carries the sentinel to exactly the sentinel, so callers can compare
// verbatim.
func normaliseAnswer(answer string) string {
	answer = strings.TrimSpace(answer)
	answer = strings.Trim(answer, `"`)
	if answer == "" || strings.Contains(answer, domain.NotFoundAnswer) {
		return domain.NotFoundAnswer
	}
	return answer
}
