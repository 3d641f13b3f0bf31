package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/logger"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON writes a JSON response with the given status code.
// Uses buffer-first strategy to ensure headers are only sent after successful encoding.
func writeJSON(w http.ResponseWriter, status int, data any) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Debug("Failed to write response body: %v", err)
	}
}

// writeError maps a domain error to a status code and JSON envelope.
// A missing resource and an unreachable backend must stay
// distinguishable for the caller.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		status, code = http.StatusBadRequest, "unsupported_format"
	case errors.Is(err, domain.ErrAlreadyExists):
		status, code = http.StatusConflict, "already_exists"
	case errors.Is(err, domain.ErrRebuildInProgress):
		status, code = http.StatusConflict, "rebuild_in_progress"
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		status, code = http.StatusServiceUnavailable, "embedding_unavailable"
	case errors.Is(err, domain.ErrGenerationFailed):
		status, code = http.StatusServiceUnavailable, "generation_failed"
	case errors.Is(err, domain.ErrDimensionMismatch):
		status, code = http.StatusConflict, "dimension_mismatch"
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}
