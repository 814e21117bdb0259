package uploadjob

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tagreel/videos-ms-go/internal/auth"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type uploadStatusSrv struct {
	jobs  port.UploadJobRepository
	shops port.ShopRepository
}

// compile-time check: *uploadStatusSrv must satisfy port.UploadStatusGetter
var _ port.UploadStatusGetter = (*uploadStatusSrv)(nil)

// NewUploadStatusGetter constructs a port.UploadStatusGetter implementation.
func NewUploadStatusGetter(jobs port.UploadJobRepository, shops port.ShopRepository) port.UploadStatusGetter {
	return &uploadStatusSrv{jobs: jobs, shops: shops}
}

// GetUploadStatus reports one job's progress to a caller scoped to the
// job's shop. The tenant check needs the shop row: jobs only carry the
// shop ID, the organization comes off the shop.
func (s *uploadStatusSrv) GetUploadStatus(ctx context.Context, principal model.Principal, jobID uuid.UUID) (port.UploadStatusOutput, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.UploadStatusOutput{}, video.ErrNotFound
		}
		return port.UploadStatusOutput{}, err
	}

	shop, err := s.shops.GetByID(ctx, job.ShopID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.UploadStatusOutput{}, video.ErrNotFound
		}
		return port.UploadStatusOutput{}, err
	}

	decision := auth.Authorize(principal, auth.ActionRead, auth.Scope{
		Resource:       auth.ResourceVideo,
		OrganizationID: shop.OrganizationID,
		ShopID:         shop.ID,
	})
	if !decision.Allowed {
		return port.UploadStatusOutput{}, denyToErr(decision.Reason)
	}

	out := port.UploadStatusOutput{
		JobID:        job.ID,
		ShopID:       job.ShopID,
		Status:       job.Status,
		AttemptCount: job.AttemptCount,
		CompletedAt:  job.CompletedAt,
	}
	if job.LastError != nil {
		out.LastError = *job.LastError
	}

	if job.Status == model.JobStatusDone {
		rec, err := s.jobs.GetExternalVideo(ctx, job.ID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return port.UploadStatusOutput{}, err
			}
			// done without a record should not happen; report the job as-is
		} else if rec != nil {
			out.ExternalURL = rec.ExternalURL
		}
	}

	return out, nil
}

// denyToErr converts a policy denial reason into the matching sentinel.
func denyToErr(r auth.Reason) error {
	switch r {
	case auth.ReasonWrongTenant:
		return video.ErrForbiddenTenant
	case auth.ReasonMissingAttribute:
		return video.ErrForbiddenMissingAttribute
	default:
		return video.ErrForbiddenRole
	}
}
