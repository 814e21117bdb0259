package video

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tagreel/videos-ms-go/internal/auth"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type videoDetailSrv struct {
	repo   port.VideoRepository
	strg   port.Storage
	bucket string
	expiry time.Duration
}

// compile-time check: *videoDetailSrv must satisfy port.VideoDetailGetter
var _ port.VideoDetailGetter = (*videoDetailSrv)(nil)

// NewVideoDetailGetter constructs a port.VideoDetailGetter implementation.
func NewVideoDetailGetter(repo port.VideoRepository, strg port.Storage, bucket string, expiry time.Duration) port.VideoDetailGetter {
	return &videoDetailSrv{repo: repo, strg: strg, bucket: bucket, expiry: expiry}
}

// GetVideoDetail returns the full record for an authenticated caller.
// Unlike the public endpoint, a video the caller may not read answers
// forbidden, not not-found: authenticated callers already know IDs exist.
func (s *videoDetailSrv) GetVideoDetail(ctx context.Context, principal model.Principal, id uuid.UUID) (port.VideoDetailOutput, error) {
	vid, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.VideoDetailOutput{}, ErrNotFound
		}
		return port.VideoDetailOutput{}, err
	}

	d := auth.Authorize(principal, auth.ActionRead, auth.Scope{
		Resource:       auth.ResourceVideo,
		OrganizationID: vid.OrganizationID,
		ShopID:         vid.ShopID,
	})
	if !d.Allowed {
		return port.VideoDetailOutput{}, denyToErr(d.Reason)
	}

	videoURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, vid.ObjectKey, s.expiry)
	if err != nil {
		return port.VideoDetailOutput{}, err
	}

	out := port.VideoDetailOutput{
		ID:             vid.ID,
		OrganizationID: vid.OrganizationID,
		ShopID:         vid.ShopID,
		Title:          vid.Title,
		Description:    vid.Description,
		FileSize:       vid.FileSize,
		DurationSecs:   vid.DurationSecs,
		ViewCount:      vid.ViewCount,
		UploaderSub:    vid.UploaderSub,
		UploadedAt:     vid.UploadedAt,
		VideoURL:       videoURL,
	}
	if vid.ThumbnailKey != nil {
		thumbURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, *vid.ThumbnailKey, s.expiry)
		if err != nil {
			return port.VideoDetailOutput{}, err
		}
		out.ThumbnailURL = thumbURL
	}
	return out, nil
}
