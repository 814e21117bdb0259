package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tagreel/videos-ms-go/internal/logger"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, code, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

// writeDomainError maps the video domain sentinels onto HTTP responses.
// Each forbidden flavour keeps its own code so clients can tell a tenant
// mismatch from a role problem.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, video.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "Video not found", nil)
	case errors.Is(err, video.ErrForbiddenTenant):
		WriteError(w, http.StatusForbidden, "wrong_tenant", "Resource belongs to another tenant", nil)
	case errors.Is(err, video.ErrForbiddenRole):
		WriteError(w, http.StatusForbidden, "insufficient_role", "Role does not permit this action", nil)
	case errors.Is(err, video.ErrForbiddenMissingAttribute):
		WriteError(w, http.StatusForbidden, "missing_attribute", "Caller is missing a tenant attribute", nil)
	case errors.Is(err, video.ErrGracePeriodExpired):
		WriteError(w, http.StatusForbidden, "grace_period_expired", "Deletion grace period has expired", nil)
	default:
		WriteError(w, http.StatusInternalServerError, "internal", "Internal server error", err)
	}
}
