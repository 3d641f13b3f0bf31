package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
)

// maxUploadSize caps multipart uploads.
const maxUploadSize = 20 << 20 // 20 MiB

// handlers holds the driving ports the HTTP surface delegates to.
type handlers struct {
	query       driving.QueryService
	index       driving.IndexService
	document    driving.DocumentService
	fieldMemory driving.FieldMemoryService
}

// queryRequest is the /api/query request body.
type queryRequest struct {
	Question     string `json:"question"`
	FieldContext string `json:"field_context"`
	FieldID      string `json:"field_id"`
	PageURL      string `json:"page_url"`
	PartialInput string `json:"partial_input"`
}

// queryResponse is the /api/query response body.
type queryResponse struct {
	Answer     string  `json:"answer"`
	SourceFile string  `json:"source_file,omitempty"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	Found      bool    `json:"found"`
}

// healthResponse is the /health response body.
type healthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
	Chunks    int    `json:"chunks"`
	Stale     bool   `json:"stale"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	docs, err := h.document.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	snap := h.index.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Documents: len(docs),
		Chunks:    len(snap.Records),
		Stale:     h.index.Stale(),
	})
}

func (h *handlers) checkLocal(w http.ResponseWriter, r *http.Request) {
	available := h.query.CheckLocalModel(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// rebuildResponse is the /api/rebuild response body.
type rebuildResponse struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
	Reused    int `json:"reused"`
	Embedded  int `json:"embedded"`
	Skipped   int `json:"skipped"`
}

func (h *handlers) rebuild(w http.ResponseWriter, r *http.Request) {
	stats, err := h.index.Rebuild(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rebuildResponse{
		Documents: stats.Documents,
		Chunks:    stats.Chunks,
		Reused:    stats.Reused,
		Embedded:  stats.Embedded,
		Skipped:   stats.Skipped,
	})
}

func (h *handlers) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput))
		return
	}
	if req.Question == "" {
		writeError(w, fmt.Errorf("%w: question is required", domain.ErrInvalidInput))
		return
	}

	answer, err := h.query.Query(r.Context(), domain.QueryRequest{
		Text:         req.Question,
		FieldContext: req.FieldContext,
		FieldID:      req.FieldID,
		PageURL:      req.PageURL,
		PartialInput: req.PartialInput,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:     answer.Text,
		SourceFile: answer.SourceFile,
		Source:     string(answer.Source),
		Confidence: answer.Confidence,
		Found:      answer.Text != domain.NotFoundAnswer,
	})
}

// documentResponse is one entry of the /api/documents listing.
type documentResponse struct {
	Name     string `json:"name"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

func (h *handlers) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.document.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]documentResponse, len(docs))
	for i := range docs {
		out[i] = documentResponse{
			Name:     docs[i].Name,
			Format:   string(docs[i].Format),
			Size:     docs[i].Size,
			Modified: docs[i].ModTime.Format("2006-01-02 15:04:05"),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, fmt.Errorf("%w: invalid multipart form", domain.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: file field is required", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("read upload: %w", err))
		return
	}

	doc, err := h.document.Upload(r.Context(), header.Filename, content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, documentResponse{
		Name:     doc.Name,
		Format:   string(doc.Format),
		Size:     doc.Size,
		Modified: doc.ModTime.Format("2006-01-02 15:04:05"),
	})
}

func (h *handlers) deleteDocument(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.document.Delete(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

// acceptRequest is the /api/accept request body.
type acceptRequest struct {
	FieldContext string `json:"field_context"`
	Answer       string `json:"answer"`
}

func (h *handlers) accept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput))
		return
	}
	if req.FieldContext == "" || req.Answer == "" {
		writeError(w, fmt.Errorf("%w: field_context and answer are required", domain.ErrInvalidInput))
		return
	}

	if err := h.fieldMemory.RecordAccepted(r.Context(), req.FieldContext, req.Answer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// rejectRequest is the /api/reject request body.
type rejectRequest struct {
	FieldID string `json:"field_id"`
	PageURL string `json:"page_url"`
}

func (h *handlers) reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput))
		return
	}

	if err := h.fieldMemory.Reject(r.Context(), req.FieldID, req.PageURL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// clearRejectionsRequest is the /api/rejections/clear request body.
// An empty page_url clears all rejections.
type clearRejectionsRequest struct {
	PageURL string `json:"page_url"`
}

func (h *handlers) clearRejections(w http.ResponseWriter, r *http.Request) {
	var req clearRejectionsRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput))
			return
		}
	}

	if err := h.fieldMemory.ClearRejections(r.Context(), req.PageURL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
