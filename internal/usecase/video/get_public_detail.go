package video

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type publicDetailSrv struct {
	repo   port.VideoRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
	expiry time.Duration
}

// compile-time check: *publicDetailSrv must satisfy port.PublicDetailGetter
var _ port.PublicDetailGetter = (*publicDetailSrv)(nil)

// NewPublicDetailGetter constructs a port.PublicDetailGetter implementation.
func NewPublicDetailGetter(repo port.VideoRepository, cache port.Cache, strg port.Storage, bucket string, expiry time.Duration) port.PublicDetailGetter {
	return &publicDetailSrv{repo: repo, cache: cache, strg: strg, bucket: bucket, expiry: expiry}
}

// GetPublicVideoDetail serves the anonymous watch page. Anything the caller
// may not see answers not-found, so a probing client cannot tell a deleted
// video from one that never existed.
func (s *publicDetailSrv) GetPublicVideoDetail(ctx context.Context, id uuid.UUID) (port.PublicVideoDetail, error) {
	cached, err := s.cache.GetPublicDetail(ctx, id)
	if err != nil {
		log.Printf("failed reading cache for video #%s: %v", id, err)
	}
	if cached != nil && time.Now().Before(cached.ValidUntil) {
		s.countView(ctx, id)
		return *cached, nil
	}

	vid, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.PublicVideoDetail{}, ErrNotFound
		}
		return port.PublicVideoDetail{}, err
	}
	if vid.Status != model.VideoStatusActive {
		return port.PublicVideoDetail{}, ErrNotFound
	}

	videoURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, vid.ObjectKey, s.expiry)
	if err != nil {
		return port.PublicVideoDetail{}, err
	}

	detail := port.PublicVideoDetail{
		ID:           vid.ID,
		Title:        vid.Title,
		Description:  vid.Description,
		VideoURL:     videoURL,
		DurationSecs: vid.DurationSecs,
		ViewCount:    vid.ViewCount,
		UploadDate:   vid.UploadedAt,
		ValidUntil:   time.Now().UTC().Add(s.expiry),
	}
	if vid.ThumbnailKey != nil {
		thumbURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, *vid.ThumbnailKey, s.expiry)
		if err != nil {
			return port.PublicVideoDetail{}, err
		}
		detail.ThumbnailURL = thumbURL
	}

	if err := s.cache.SetPublicDetail(ctx, id, &detail); err != nil {
		log.Printf("failed caching detail for video #%s: %v", id, err)
	}
	s.countView(ctx, id)
	return detail, nil
}

// countView bumps the view counter best-effort: a lost increment never
// fails the watch page. Cached payloads keep the count they were built
// with, so the reported number can lag the counter by up to the cache TTL.
func (s *publicDetailSrv) countView(ctx context.Context, id uuid.UUID) {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		log.Printf("failed counting view for video #%s: %v", id, err)
	}
}
