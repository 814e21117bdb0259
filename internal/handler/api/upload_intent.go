package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/logger"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/validation"
)

type UploadIntentRequest struct {
	FileName     string `json:"file_name" validate:"required,max=255"`
	FileSize     int64  `json:"file_size" validate:"required,gt=0"`
	DurationSecs int64  `json:"duration_seconds" validate:"gte=0"`
	ContentType  string `json:"content_type" validate:"required,max=100"`
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=2000"`
}

// UploadIntentHandler issues a presigned write URL for a new video.
func UploadIntentHandler(svc port.IntentIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := api_context.PrincipalFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		var req UploadIntentRequest
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

			// return the validation errors payload directly
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.IssueUploadIntent(r.Context(), port.IssueUploadIntentInput{
			Principal:    principal,
			FileName:     req.FileName,
			FileSize:     req.FileSize,
			DurationSecs: req.DurationSecs,
			ContentType:  req.ContentType,
			Title:        req.Title,
			Description:  req.Description,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		logger.Infof(r.Context(), "✅  Successfully issued upload intent for video #%s", out.VideoID)
	}
}
