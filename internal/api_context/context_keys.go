package api_context

import (
	"context"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type ctxKey string

const (
	VideoIDKey   ctxKey = "videoID"
	PrincipalKey ctxKey = "principal"
	SourceIPKey  ctxKey = "sourceIP"
)

func VideoIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(VideoIDKey).(uuid.UUID)
	return id, ok
}

func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(model.Principal)
	return p, ok
}

func SourceIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(SourceIPKey).(string)
	return ip, ok
}
