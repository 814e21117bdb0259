package api

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	guuid "github.com/google/uuid"
	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/auth"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// WithAuth resolves the caller through the configured authenticator and
// stashes the principal and the request source IP in the context. Every
// request on a protected route passes through here exactly once.
func WithAuth(a auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := a.Authenticate(r)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.PrincipalKey, principal)
			ctx = context.WithValue(ctx, api_context.SourceIPKey, sourceIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithVideoID parses the {id} route parameter and stashes it in context.
func WithVideoID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				WriteError(w, http.StatusBadRequest, "invalid_id", "ID is required", nil)
				return
			}
			parsedID, err := guuid.Parse(id)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "invalid_id", fmt.Sprintf("ID %q is not a valid UUID", id), nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.VideoIDKey, uuid.UUID(parsedID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sourceIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
