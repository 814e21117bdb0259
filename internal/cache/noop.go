package cache

import (
	"context"

	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetPublicDetail(ctx context.Context, id uuid.UUID) (*port.PublicVideoDetail, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetPublicDetail(ctx context.Context, id uuid.UUID, detail *port.PublicVideoDetail) error {
	return nil
}

func (n *NoopCache) DeletePublicDetail(ctx context.Context, id uuid.UUID) error { return nil }
