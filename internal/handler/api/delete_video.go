package api

import (
	"net/http"

	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/logger"
	"github.com/tagreel/videos-ms-go/internal/port"
)

// DeleteVideoHandler deletes a video by ID.
func DeleteVideoHandler(svc port.VideoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := api_context.PrincipalFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}
		id, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "invalid_id", "ID is required", nil)
			return
		}
		sourceIP, _ := api_context.SourceIPFromContext(r.Context())

		err := svc.DeleteVideo(r.Context(), port.DeleteVideoInput{
			Principal: principal,
			ID:        id,
			SourceIP:  sourceIP,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted video #%s", id)
	}
}
