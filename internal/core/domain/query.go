package domain

// NotFoundAnswer is the canonical sentinel meaning "no grounded answer
// exists in the knowledge base". Callers compare against it verbatim to
// suppress ungrounded suggestions, so it must never be paraphrased.
// It is a successful outcome, not an error.
const NotFoundAnswer = "Not in DB"

// AnswerSource identifies which path produced an answer.
type AnswerSource string

// Answer sources.
const (
	// AnswerFromLocal means a local model generated the answer.
	AnswerFromLocal AnswerSource = "local-model"

	// AnswerFromRemote means a remote model generated the answer.
	AnswerFromRemote AnswerSource = "remote-model"

	// AnswerFromExtraction means the pattern-extraction fallback produced
	// the answer without any model.
	AnswerFromExtraction AnswerSource = "extraction"

	// AnswerFromMemory means a previously accepted answer was replayed.
	AnswerFromMemory AnswerSource = "field-memory"

	// AnswerSuppressed means the field is rejected and no answer was
	// produced.
	AnswerSuppressed AnswerSource = "suppressed"
)

// QueryRequest carries a single form-filling question through the pipeline.
type QueryRequest struct {
	// Text is the natural-language question, e.g. "What is my email?".
	Text string

	// FieldContext describes the form field being filled (label, name).
	FieldContext string

	// FieldID is the opaque stable identity of the form field.
	// Provided by the caller; the core does not inspect it.
	FieldID string

	// PageURL scopes the field identity to a page.
	PageURL string

	// PartialInput is text the user already typed into the field.
	// Used as a filter hint to narrow candidate answers.
	PartialInput string
}

// Answer is the result of a query.
type Answer struct {
	// Text is the directly-insertable value, or NotFoundAnswer.
	Text string

	// SourceFile is the document that supported the answer, when known.
	SourceFile string

	// Source identifies the path that produced the answer.
	Source AnswerSource

	// Confidence is the top retrieval similarity, when retrieval ran.
	Confidence float64
}

// NotFound reports whether the answer is the canonical sentinel.
func (a Answer) NotFound() bool {
	return a.Text == NotFoundAnswer
}

// RetrievedChunk is a scored retrieval hit.
type RetrievedChunk struct {
	// Record is the matched embedding record.
	Record EmbeddingRecord

	// Similarity is the cosine similarity to the query vector, in [-1, 1].
	Similarity float64
}
