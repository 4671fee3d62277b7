package http

import (
	"context"
	"encoding/json"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps an error kind to its transport status. Validation and
// conflict reasons pass through verbatim; storage failures are logged and
// masked.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case core.IsValidation(err):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: core.ErrorMessage(err)})
	case core.IsUnauthenticated(err):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: core.ErrorMessage(err)})
	case core.IsNotFound(err):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: core.ErrorMessage(err)})
	case core.IsConflict(err):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: core.ErrorMessage(err)})
	default:
		log.FromContext(ctx).ErrorContext(ctx, "request failed", log.FieldError, err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
