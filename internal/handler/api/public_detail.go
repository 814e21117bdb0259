package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/port"
)

// PublicDetailHandler serves the anonymous watch endpoint. The response is
// cacheable until its presigned URL expires.
func PublicDetailHandler(svc port.PublicDetailGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "invalid_id", "ID is required", nil)
			return
		}

		out, err := svc.GetPublicVideoDetail(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if ttl := time.Until(out.ValidUntil); ttl > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())))
		}
		RespondJSON(w, http.StatusOK, out)
	}
}
