package api

import (
	"net/http"
	"strconv"

	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
)

// ListVideosHandler lists videos within the caller's scope. Filters come in
// as query parameters: search, status, organization_id, limit, page_token.
func ListVideosHandler(svc port.VideoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := api_context.PrincipalFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		q := r.URL.Query()
		limit := 0
		if raw := q.Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				WriteError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", nil)
				return
			}
			limit = parsed
		}

		out, err := svc.ListVideos(r.Context(), port.ListVideosInput{
			Principal:      principal,
			Search:         q.Get("search"),
			Status:         model.VideoStatus(q.Get("status")),
			OrganizationID: q.Get("organization_id"),
			Limit:          limit,
			PageToken:      q.Get("page_token"),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
	}
}
