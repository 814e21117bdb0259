package mock

import (
	"context"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// IntentIssuer implements port.IntentIssuer for handler tests.
type IntentIssuer struct {
	Out port.IssueUploadIntentOutput
	Err error

	Called   bool
	GotInput port.IssueUploadIntentInput
}

func (m *IntentIssuer) IssueUploadIntent(ctx context.Context, in port.IssueUploadIntentInput) (port.IssueUploadIntentOutput, error) {
	m.Called = true
	m.GotInput = in
	return m.Out, m.Err
}

// VideoLister implements port.VideoLister for handler tests.
type VideoLister struct {
	Out port.ListVideosOutput
	Err error

	Called   bool
	GotInput port.ListVideosInput
}

func (m *VideoLister) ListVideos(ctx context.Context, in port.ListVideosInput) (port.ListVideosOutput, error) {
	m.Called = true
	m.GotInput = in
	return m.Out, m.Err
}

// VideoDetailGetter implements port.VideoDetailGetter for handler tests.
type VideoDetailGetter struct {
	Out port.VideoDetailOutput
	Err error

	Called       bool
	GotPrincipal model.Principal
	GotID        uuid.UUID
}

func (m *VideoDetailGetter) GetVideoDetail(ctx context.Context, principal model.Principal, id uuid.UUID) (port.VideoDetailOutput, error) {
	m.Called = true
	m.GotPrincipal = principal
	m.GotID = id
	return m.Out, m.Err
}

// PublicDetailGetter implements port.PublicDetailGetter for handler tests.
type PublicDetailGetter struct {
	Out port.PublicVideoDetail
	Err error

	Called bool
	GotID  uuid.UUID
}

func (m *PublicDetailGetter) GetPublicVideoDetail(ctx context.Context, id uuid.UUID) (port.PublicVideoDetail, error) {
	m.Called = true
	m.GotID = id
	return m.Out, m.Err
}

// VideoDeleter implements port.VideoDeleter for handler tests.
type VideoDeleter struct {
	Err error

	Called   bool
	GotInput port.DeleteVideoInput
}

func (m *VideoDeleter) DeleteVideo(ctx context.Context, in port.DeleteVideoInput) error {
	m.Called = true
	m.GotInput = in
	return m.Err
}

// UploadEnqueuer implements port.UploadEnqueuer for handler tests.
type UploadEnqueuer struct {
	Out port.EnqueueUploadOutput
	Err error

	Called   bool
	GotInput port.EnqueueUploadInput
}

func (m *UploadEnqueuer) EnqueueUpload(ctx context.Context, in port.EnqueueUploadInput) (port.EnqueueUploadOutput, error) {
	m.Called = true
	m.GotInput = in
	return m.Out, m.Err
}

// UploadStatusGetter implements port.UploadStatusGetter for handler tests.
type UploadStatusGetter struct {
	Out port.UploadStatusOutput
	Err error

	Called   bool
	GotJobID uuid.UUID
}

func (m *UploadStatusGetter) GetUploadStatus(ctx context.Context, principal model.Principal, jobID uuid.UUID) (port.UploadStatusOutput, error) {
	m.Called = true
	m.GotJobID = jobID
	return m.Out, m.Err
}

// ShopCreator implements port.ShopCreator for handler tests.
type ShopCreator struct {
	Out port.CreateShopOutput
	Err error

	Called   bool
	GotInput port.CreateShopInput
}

func (m *ShopCreator) CreateShop(ctx context.Context, in port.CreateShopInput) (port.CreateShopOutput, error) {
	m.Called = true
	m.GotInput = in
	return m.Out, m.Err
}

// UploadProcessor implements port.UploadProcessor for worker handler tests.
type UploadProcessor struct {
	Err error

	Called    bool
	GotJobID  uuid.UUID
	GotFinal  bool
	CallCount int
}

func (m *UploadProcessor) ProcessUpload(ctx context.Context, jobID uuid.UUID, finalAttempt bool) error {
	m.Called = true
	m.CallCount++
	m.GotJobID = jobID
	m.GotFinal = finalAttempt
	return m.Err
}
