package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/logger"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
	"github.com/tagreel/videos-ms-go/internal/validation"
)

type EnqueueUploadRequest struct {
	ShopID    string `json:"shop_id" validate:"required,max=100"`
	SourceKey string `json:"source_key" validate:"required,max=500"`
	Title     string `json:"title" validate:"required,max=200"`
	SerialNo  string `json:"serial_no" validate:"max=100"`
}

// EnqueueUploadHandler accepts a platform upload request and queues it.
// Authorization happens in the use case, against the tenant coordinates of
// the target shop row.
func EnqueueUploadHandler(svc port.UploadEnqueuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := api_context.PrincipalFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		var req EnqueueUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "internal", "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.EnqueueUpload(r.Context(), port.EnqueueUploadInput{
			Principal: principal,
			ShopID:    req.ShopID,
			SourceKey: req.SourceKey,
			Title:     req.Title,
			SerialNo:  req.SerialNo,
		})
		if err != nil {
			if errors.Is(err, video.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "not_found", "Shop not found", nil)
				return
			}
			writeDomainError(w, err)
			return
		}

		RespondJSON(w, http.StatusAccepted, out)
		logger.Infof(r.Context(), "✅  Successfully enqueued upload job #%s", out.JobID)
	}
}
