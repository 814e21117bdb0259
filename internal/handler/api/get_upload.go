package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	guuid "github.com/google/uuid"
	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// GetUploadHandler reports an upload job's progress to its tenant.
func GetUploadHandler(svc port.UploadStatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := api_context.PrincipalFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		raw := chi.URLParam(r, "id")
		parsed, err := guuid.Parse(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_id", fmt.Sprintf("ID %q is not a valid UUID", raw), nil)
			return
		}

		out, err := svc.GetUploadStatus(r.Context(), principal, uuid.UUID(parsed))
		if err != nil {
			if errors.Is(err, video.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "not_found", "Upload job not found", nil)
				return
			}
			writeDomainError(w, err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
	}
}
