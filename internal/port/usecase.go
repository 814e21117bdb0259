package port

import (
	"context"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// IssueUploadIntentInput describes a client's intention to upload a video.
type IssueUploadIntentInput struct {
	Principal    model.Principal
	FileName     string
	FileSize     int64
	DurationSecs int64
	ContentType  string
	Title        string
	Description  string
}

// IssueUploadIntentOutput carries the signed write URL the client PUTs to.
// The metadata row already exists when this is returned; the object does not.
type IssueUploadIntentOutput struct {
	VideoID   uuid.UUID `json:"video_id"`
	UploadURL string    `json:"upload_url"`
	ObjectKey string    `json:"object_key"`
	ExpiresIn int       `json:"expires_in"`
}

// IntentIssuer issues upload intents.
type IntentIssuer interface {
	IssueUploadIntent(ctx context.Context, in IssueUploadIntentInput) (IssueUploadIntentOutput, error)
}

// ListVideosInput carries the caller and the optional filters.
type ListVideosInput struct {
	Principal      model.Principal
	Search         string
	Status         model.VideoStatus
	OrganizationID string
	Limit          int
	PageToken      string
}

// VideoSummary is one row of a listing.
type VideoSummary struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ShopID         string    `json:"shop_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	FileSize       int64     `json:"file_size"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

type ListVideosOutput struct {
	Videos        []VideoSummary `json:"videos"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// VideoLister lists videos within the caller's scope.
type VideoLister interface {
	ListVideos(ctx context.Context, in ListVideosInput) (ListVideosOutput, error)
}

// VideoDetailOutput is the authenticated detail payload.
type VideoDetailOutput struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ShopID         string    `json:"shop_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	FileSize       int64     `json:"file_size"`
	DurationSecs   int64     `json:"duration_seconds"`
	ViewCount      int64     `json:"view_count"`
	UploaderSub    string    `json:"uploader_sub"`
	UploadedAt     time.Time `json:"uploaded_at"`
	VideoURL       string    `json:"video_url"`
	ThumbnailURL   string    `json:"thumbnail_url,omitempty"`
}

// VideoDetailGetter fetches the authenticated detail of one video.
type VideoDetailGetter interface {
	GetVideoDetail(ctx context.Context, principal model.Principal, id uuid.UUID) (VideoDetailOutput, error)
}

// PublicVideoDetail strips everything not meant for anonymous viewers:
// no owner identity, no tenant coordinates, no billing state.
type PublicVideoDetail struct {
	ID           uuid.UUID `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	DurationSecs int64     `json:"duration"`
	ViewCount    int64     `json:"view_count"`
	UploadDate   time.Time `json:"upload_date"`
	ValidUntil   time.Time `json:"valid_until"`
}

// PublicDetailGetter serves the anonymous watch endpoint. Anything the
// caller may not see is a not-found, never a forbidden.
type PublicDetailGetter interface {
	GetPublicVideoDetail(ctx context.Context, id uuid.UUID) (PublicVideoDetail, error)
}

// DeleteVideoInput carries the caller, the target and the request source
// for the audit trail.
type DeleteVideoInput struct {
	Principal model.Principal
	ID        uuid.UUID
	SourceIP  string
}

// VideoDeleter runs the delete state machine: active → deleted, only for an
// authorized caller inside the grace window.
type VideoDeleter interface {
	DeleteVideo(ctx context.Context, in DeleteVideoInput) error
}

// EnqueueUploadInput is the intake payload for one asynchronous platform
// upload. The principal is authorized against the target shop's tenant
// coordinates, resolved from the shop row.
type EnqueueUploadInput struct {
	Principal model.Principal
	ShopID    string
	SourceKey string
	Title     string
	SerialNo  string
}

type EnqueueUploadOutput struct {
	JobID uuid.UUID `json:"job_id"`
}

// UploadEnqueuer records the job durably and hands it to the queue.
type UploadEnqueuer interface {
	EnqueueUpload(ctx context.Context, in EnqueueUploadInput) (EnqueueUploadOutput, error)
}

// UploadStatusOutput reports one job's progress. ExternalURL is only set
// once the job is done.
type UploadStatusOutput struct {
	JobID        uuid.UUID       `json:"job_id"`
	ShopID       string          `json:"shop_id"`
	Status       model.JobStatus `json:"status"`
	AttemptCount int             `json:"attempt_count"`
	LastError    string          `json:"last_error,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	ExternalURL  string          `json:"external_url,omitempty"`
}

// UploadStatusGetter reports the progress of one upload job to its tenant.
type UploadStatusGetter interface {
	GetUploadStatus(ctx context.Context, principal model.Principal, jobID uuid.UUID) (UploadStatusOutput, error)
}

// UploadProcessor performs one delivery attempt of an upload job.
// FinalAttempt tells it whether the queue will give up after this attempt.
type UploadProcessor interface {
	ProcessUpload(ctx context.Context, jobID uuid.UUID, finalAttempt bool) error
}

// CreateShopInput carries the caller and the new shop's coordinates.
// PlatformCredential is the already envelope-encrypted blob; it may be empty
// and provisioned later.
type CreateShopInput struct {
	Principal          model.Principal
	OrganizationID     string
	Name               string
	Email              string
	Phone              string
	NotifyEmail        string
	PlatformCredential []byte
}

type CreateShopOutput struct {
	ShopID string `json:"shop_id"`
}

// ShopCreator provisions a shop inside an existing organization.
type ShopCreator interface {
	CreateShop(ctx context.Context, in CreateShopInput) (CreateShopOutput, error)
}

// Cache stores rendered public video details until their presigned URL
// expires.
type Cache interface {
	GetPublicDetail(ctx context.Context, id uuid.UUID) (*PublicVideoDetail, error)
	SetPublicDetail(ctx context.Context, id uuid.UUID, detail *PublicVideoDetail) error
	DeletePublicDetail(ctx context.Context, id uuid.UUID) error
}
