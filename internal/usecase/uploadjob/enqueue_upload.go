package uploadjob

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/tagreel/videos-ms-go/internal/auth"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type uploadEnqueuerSrv struct {
	jobs  port.UploadJobRepository
	shops port.ShopRepository
	disp  port.TaskDispatcher
}

// compile-time check: *uploadEnqueuerSrv must satisfy port.UploadEnqueuer
var _ port.UploadEnqueuer = (*uploadEnqueuerSrv)(nil)

// NewUploadEnqueuer constructs a port.UploadEnqueuer implementation.
func NewUploadEnqueuer(jobs port.UploadJobRepository, shops port.ShopRepository, disp port.TaskDispatcher) port.UploadEnqueuer {
	return &uploadEnqueuerSrv{jobs: jobs, shops: shops, disp: disp}
}

// EnqueueUpload authorizes the caller against the target shop, records the
// job durably, then hands it to the queue. The shop row is loaded first:
// jobs only name a shop ID, so the organization the tenant check needs
// comes off the shop itself. The row comes before the queue: a job that
// exists but was never enqueued can be requeued by an operator, an
// enqueued job with no row cannot be processed at all.
func (s *uploadEnqueuerSrv) EnqueueUpload(ctx context.Context, in port.EnqueueUploadInput) (port.EnqueueUploadOutput, error) {
	sh, err := s.shops.GetByID(ctx, in.ShopID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.EnqueueUploadOutput{}, video.ErrNotFound
		}
		return port.EnqueueUploadOutput{}, err
	}

	decision := auth.Authorize(in.Principal, auth.ActionCreate, auth.Scope{
		Resource:       auth.ResourceVideo,
		OrganizationID: sh.OrganizationID,
		ShopID:         sh.ID,
	})
	if !decision.Allowed {
		return port.EnqueueUploadOutput{}, denyToErr(decision.Reason)
	}

	now := time.Now().UTC()
	job := &model.UploadJob{
		ID:        uuid.NewUUID(),
		ShopID:    in.ShopID,
		SourceKey: in.SourceKey,
		Title:     in.Title,
		SerialNo:  in.SerialNo,
		Status:    model.JobStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return port.EnqueueUploadOutput{}, err
	}

	if err := s.disp.EnqueueVideoUpload(ctx, job); err != nil {
		return port.EnqueueUploadOutput{}, err
	}

	log.Printf("enqueued upload job #%s for shop %q", job.ID, in.ShopID)
	return port.EnqueueUploadOutput{JobID: job.ID}, nil
}
