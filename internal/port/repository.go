package port

import (
	"context"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// VideoPage is one page of a scoped video listing. NextPageToken is empty
// on the last page.
type VideoPage struct {
	Videos        []model.Video
	NextPageToken string
}

// VideoRepository owns persistence of video metadata and the tenant
// aggregate counters, which are updated in the same transaction.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
	// DeleteActive removes the row only while its status is still active.
	// A concurrent second delete observes zero affected rows and gets
	// ErrNoRows back, never a partial state.
	DeleteActive(ctx context.Context, id uuid.UUID) error
	// IncrementViewCount bumps the public view counter of an active video
	// by one.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	ListByShop(ctx context.Context, shopID string, limit int, pageToken string) (VideoPage, error)
	ListByOrganization(ctx context.Context, orgID string, limit int, pageToken string) (VideoPage, error)
	// ListAll is the system-admin full scan. Result order is not defined;
	// callers must not assume one.
	ListAll(ctx context.Context, limit int, pageToken string) (VideoPage, error)
}

// ShopRepository reads and conditionally creates shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	GetByID(ctx context.Context, id string) (*model.Shop, error)
}

// OrganizationRepository reads and conditionally creates organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id string) (*model.Organization, error)
}

// UploadJobRepository owns upload job state transitions. All transitions
// are conditional on the current status so that redelivered jobs cannot
// regress a terminal state.
type UploadJobRepository interface {
	Create(ctx context.Context, job *model.UploadJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.UploadJob, error)
	// MarkProcessing claims the job. It succeeds when the job is queued or
	// already processing (a prior crashed attempt), and reports the
	// current status otherwise.
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	IncrementAttempt(ctx context.Context, id uuid.UUID, lastError string) error
	MarkDone(ctx context.Context, id uuid.UUID, completedAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error
	InsertExternalVideo(ctx context.Context, rec *model.ExternalVideo) error
	GetExternalVideo(ctx context.Context, jobID uuid.UUID) (*model.ExternalVideo, error)
}

// AuditRepository appends audit records. Append-only by contract.
type AuditRepository interface {
	Insert(ctx context.Context, rec *model.AuditRecord) error
}
