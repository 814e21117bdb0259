package api

import (
	"net/http"

	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/port"
)

// GetVideoHandler returns the full record of one video for an authenticated
// caller.
func GetVideoHandler(svc port.VideoDetailGetter) http.HandlerFunc {
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

		out, err := svc.GetVideoDetail(r.Context(), principal, id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
	}
}
