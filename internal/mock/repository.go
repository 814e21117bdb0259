package mock

import (
	"context"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// VideoRepo implements port.VideoRepository for tests.
type VideoRepo struct {
	VideoRecord *model.Video

	GetErr       error
	CreateErr    error
	DeleteErr    error
	ListErr      error
	IncrViewsErr error

	ListByShopOut port.VideoPage
	ListByOrgOut  port.VideoPage
	ListAllOut    port.VideoPage

	Created        *model.Video
	GetCalled      bool
	DeleteCalled   bool
	DeletedID      uuid.UUID
	ListShopCalled bool
	ListShopID     string
	ListOrgCalled  bool
	ListOrgID      string
	ListAllCalled  bool
	LastLimit      int
	LastPageToken  string

	IncrViewsCalled bool
	IncrViewsID     uuid.UUID
}

func (m *VideoRepo) Create(ctx context.Context, video *model.Video) error {
	m.Created = video
	return m.CreateErr
}

func (m *VideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VideoRecord, nil
}

func (m *VideoRepo) DeleteActive(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *VideoRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	m.IncrViewsCalled = true
	m.IncrViewsID = id
	return m.IncrViewsErr
}

func (m *VideoRepo) ListByShop(ctx context.Context, shopID string, limit int, pageToken string) (port.VideoPage, error) {
	m.ListShopCalled = true
	m.ListShopID = shopID
	m.LastLimit = limit
	m.LastPageToken = pageToken
	return m.ListByShopOut, m.ListErr
}

func (m *VideoRepo) ListByOrganization(ctx context.Context, orgID string, limit int, pageToken string) (port.VideoPage, error) {
	m.ListOrgCalled = true
	m.ListOrgID = orgID
	m.LastLimit = limit
	m.LastPageToken = pageToken
	return m.ListByOrgOut, m.ListErr
}

func (m *VideoRepo) ListAll(ctx context.Context, limit int, pageToken string) (port.VideoPage, error) {
	m.ListAllCalled = true
	m.LastLimit = limit
	m.LastPageToken = pageToken
	return m.ListAllOut, m.ListErr
}

// ShopRepo implements port.ShopRepository for tests.
type ShopRepo struct {
	ShopRecord *model.Shop

	GetErr    error
	CreateErr error

	Created   *model.Shop
	GetCalled bool
	GotID     string
}

func (m *ShopRepo) Create(ctx context.Context, shop *model.Shop) error {
	m.Created = shop
	return m.CreateErr
}

func (m *ShopRepo) GetByID(ctx context.Context, id string) (*model.Shop, error) {
	m.GetCalled = true
	m.GotID = id
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.ShopRecord, nil
}

// OrgRepo implements port.OrganizationRepository for tests.
type OrgRepo struct {
	OrgRecord *model.Organization

	GetErr    error
	CreateErr error

	Created   *model.Organization
	GetCalled bool
	GotID     string
}

func (m *OrgRepo) Create(ctx context.Context, org *model.Organization) error {
	m.Created = org
	return m.CreateErr
}

func (m *OrgRepo) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	m.GetCalled = true
	m.GotID = id
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.OrgRecord, nil
}

// UploadJobRepo implements port.UploadJobRepository for tests.
type UploadJobRepo struct {
	JobRecord      *model.UploadJob
	ExternalRecord *model.ExternalVideo

	GetErr            error
	CreateErr         error
	MarkProcessingErr error
	IncrementErr      error
	MarkDoneErr       error
	MarkFailedErr     error
	InsertExternalErr error
	GetExternalErr    error

	Created              *model.UploadJob
	MarkProcessingCalled bool
	IncrementCalled      bool
	IncrementLastError   string
	MarkDoneCalled       bool
	DoneAt               time.Time
	MarkFailedCalled     bool
	FailedLastError      string
	InsertedExternal     *model.ExternalVideo
}

func (m *UploadJobRepo) Create(ctx context.Context, job *model.UploadJob) error {
	m.Created = job
	return m.CreateErr
}

func (m *UploadJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.UploadJob, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.JobRecord, nil
}

func (m *UploadJobRepo) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	m.MarkProcessingCalled = true
	return m.MarkProcessingErr
}

func (m *UploadJobRepo) IncrementAttempt(ctx context.Context, id uuid.UUID, lastError string) error {
	m.IncrementCalled = true
	m.IncrementLastError = lastError
	if m.JobRecord != nil {
		m.JobRecord.AttemptCount++
	}
	return m.IncrementErr
}

func (m *UploadJobRepo) MarkDone(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	m.MarkDoneCalled = true
	m.DoneAt = completedAt
	return m.MarkDoneErr
}

func (m *UploadJobRepo) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	m.MarkFailedCalled = true
	m.FailedLastError = lastError
	return m.MarkFailedErr
}

func (m *UploadJobRepo) InsertExternalVideo(ctx context.Context, rec *model.ExternalVideo) error {
	m.InsertedExternal = rec
	return m.InsertExternalErr
}

func (m *UploadJobRepo) GetExternalVideo(ctx context.Context, jobID uuid.UUID) (*model.ExternalVideo, error) {
	if m.GetExternalErr != nil {
		return nil, m.GetExternalErr
	}
	return m.ExternalRecord, nil
}

// AuditRepo implements port.AuditRepository for tests.
type AuditRepo struct {
	InsertErr error
	Inserted  []*model.AuditRecord
}

func (m *AuditRepo) Insert(ctx context.Context, rec *model.AuditRecord) error {
	m.Inserted = append(m.Inserted, rec)
	return m.InsertErr
}
