package uploadjob

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/tagreel/videos-ms-go/internal/mock"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
)

func shopUser() model.Principal {
	return model.Principal{
		Subject:        "user-1",
		Roles:          []model.Role{model.RoleShopUser},
		OrganizationID: "org-1",
		ShopID:         "org-1-shop-1",
	}
}

func TestGetUploadStatus_DoneJobCarriesExternalURL(t *testing.T) {
	completedAt := time.Now().UTC()
	job := queuedJob()
	job.Status = model.JobStatusDone
	job.AttemptCount = 1
	job.CompletedAt = &completedAt

	jobs := &mock.UploadJobRepo{
		JobRecord: job,
		ExternalRecord: &model.ExternalVideo{
			UploadJobID: job.ID,
			ExternalID:  "yt-abc",
			ExternalURL: "https://www.youtube.com/watch?v=yt-abc",
		},
	}
	shops := &mock.ShopRepo{ShopRecord: notifiedShop()}
	svc := NewUploadStatusGetter(jobs, shops)

	out, err := svc.GetUploadStatus(context.Background(), shopUser(), job.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.JobStatusDone {
		t.Errorf("status = %q; want done", out.Status)
	}
	if out.ExternalURL != "https://www.youtube.com/watch?v=yt-abc" {
		t.Errorf("ExternalURL = %q; want the platform URL", out.ExternalURL)
	}
	if out.CompletedAt == nil || !out.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt = %v; want %v", out.CompletedAt, completedAt)
	}
}

func TestGetUploadStatus_FailedJobReportsLastError(t *testing.T) {
	lastErr := "quota exceeded"
	job := queuedJob()
	job.Status = model.JobStatusFailed
	job.AttemptCount = 5
	job.LastError = &lastErr

	jobs := &mock.UploadJobRepo{JobRecord: job}
	shops := &mock.ShopRepo{ShopRecord: notifiedShop()}
	svc := NewUploadStatusGetter(jobs, shops)

	out, err := svc.GetUploadStatus(context.Background(), shopUser(), job.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.LastError != lastErr {
		t.Errorf("LastError = %q; want %q", out.LastError, lastErr)
	}
	if out.ExternalURL != "" {
		t.Errorf("failed job must not carry an external URL, got %q", out.ExternalURL)
	}
}

func TestGetUploadStatus_UnknownJob(t *testing.T) {
	jobs := &mock.UploadJobRepo{GetErr: sql.ErrNoRows}
	shops := &mock.ShopRepo{ShopRecord: notifiedShop()}
	svc := NewUploadStatusGetter(jobs, shops)

	if _, err := svc.GetUploadStatus(context.Background(), shopUser(), queuedJob().ID); !errors.Is(err, video.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUploadStatus_CrossShopForbidden(t *testing.T) {
	job := queuedJob()
	jobs := &mock.UploadJobRepo{JobRecord: job}
	shops := &mock.ShopRepo{ShopRecord: notifiedShop()}
	svc := NewUploadStatusGetter(jobs, shops)

	p := shopUser()
	p.ShopID = "org-1-shop-2"

	if _, err := svc.GetUploadStatus(context.Background(), p, job.ID); !errors.Is(err, video.ErrForbiddenTenant) {
		t.Fatalf("expected ErrForbiddenTenant, got %v", err)
	}
}

func TestGetUploadStatus_OrgAdminSameOrganization(t *testing.T) {
	job := queuedJob()
	jobs := &mock.UploadJobRepo{JobRecord: job}
	shops := &mock.ShopRepo{ShopRecord: notifiedShop()}
	svc := NewUploadStatusGetter(jobs, shops)

	p := model.Principal{
		Subject:        "adm",
		Roles:          []model.Role{model.RoleOrganizationAdmin},
		OrganizationID: "org-1",
	}

	if _, err := svc.GetUploadStatus(context.Background(), p, job.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
