package uploadjob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type uploadProcessorSrv struct {
	jobs     port.UploadJobRepository
	shops    port.ShopRepository
	vault    port.CredentialDecrypter
	strg     port.Storage
	platform port.VideoPlatform
	notifier port.Notifier
	bucket   string
}

// compile-time check: *uploadProcessorSrv must satisfy port.UploadProcessor
var _ port.UploadProcessor = (*uploadProcessorSrv)(nil)

// NewUploadProcessor constructs a port.UploadProcessor implementation.
func NewUploadProcessor(jobs port.UploadJobRepository, shops port.ShopRepository, vault port.CredentialDecrypter, strg port.Storage, platform port.VideoPlatform, notifier port.Notifier, bucket string) port.UploadProcessor {
	return &uploadProcessorSrv{
		jobs:     jobs,
		shops:    shops,
		vault:    vault,
		strg:     strg,
		platform: platform,
		notifier: notifier,
		bucket:   bucket,
	}
}

// ProcessUpload performs one delivery attempt. It is safe under redelivery:
// a job already done or failed is skipped without side effects, and the
// external video record is keyed by job ID so a crash between upload and
// commit cannot produce a second platform reference.
func (s *uploadProcessorSrv) ProcessUpload(ctx context.Context, jobID uuid.UUID, finalAttempt bool) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("dropping task for unknown upload job #%s", jobID)
			return nil
		}
		return err
	}
	switch job.Status {
	case model.JobStatusDone:
		log.Printf("skipping upload job #%s: already done", jobID)
		return nil
	case model.JobStatusFailed:
		log.Printf("skipping upload job #%s: already failed", jobID)
		return nil
	}

	if err := s.jobs.MarkProcessing(ctx, jobID); err != nil {
		return err
	}

	result, shop, err := s.attempt(ctx, job)
	if err != nil {
		msg := err.Error()
		if incErr := s.jobs.IncrementAttempt(ctx, jobID, msg); incErr != nil {
			log.Printf("failed recording attempt for upload job #%s: %v", jobID, incErr)
		}
		if finalAttempt || errors.Is(err, port.ErrPermanent) {
			s.fail(ctx, job, shop, msg)
		}
		return err
	}

	if err := s.jobs.InsertExternalVideo(ctx, &model.ExternalVideo{
		UploadJobID: jobID,
		ExternalID:  result.ExternalID,
		ExternalURL: result.ExternalURL,
		Visibility:  result.Visibility,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		return err
	}
	if err := s.jobs.MarkDone(ctx, jobID, time.Now().UTC()); err != nil {
		return err
	}

	if shop.NotifyEmail != "" {
		if err := s.notifier.SendUploadComplete(ctx, shop.NotifyEmail, job.Title, result.ExternalURL); err != nil {
			log.Printf("failed sending completion mail for upload job #%s: %v", jobID, err)
		}
	}

	// the platform reference is durable now, the source object is disposable
	if err := s.strg.RemoveFile(ctx, s.bucket, job.SourceKey); err != nil {
		log.Printf("failed removing source object %q for upload job #%s: %v", job.SourceKey, jobID, err)
	}

	log.Printf("✅ upload job #%s done: %s", jobID, result.ExternalURL)
	return nil
}

// attempt runs the transfer itself. The shop is returned even on failure so
// the caller can notify the right address.
func (s *uploadProcessorSrv) attempt(ctx context.Context, job *model.UploadJob) (port.PlatformVideo, *model.Shop, error) {
	shop, err := s.shops.GetByID(ctx, job.ShopID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.PlatformVideo{}, nil, fmt.Errorf("shop %q not found: %w", job.ShopID, port.ErrPermanent)
		}
		return port.PlatformVideo{}, nil, err
	}
	if len(shop.PlatformCredential) == 0 {
		return port.PlatformVideo{}, shop, fmt.Errorf("shop %q has no platform credential: %w", job.ShopID, port.ErrPermanent)
	}

	token, err := s.vault.Decrypt(ctx, shop.PlatformCredential)
	if err != nil {
		return port.PlatformVideo{}, shop, fmt.Errorf("decrypting credential for shop %q: %w", job.ShopID, err)
	}

	info, err := s.strg.StatFile(ctx, s.bucket, job.SourceKey)
	if err != nil {
		if errors.Is(err, video.ErrObjectNotFound) {
			return port.PlatformVideo{}, shop, fmt.Errorf("source object %q missing: %w", job.SourceKey, port.ErrPermanent)
		}
		return port.PlatformVideo{}, shop, err
	}
	body, err := s.strg.GetFile(ctx, s.bucket, job.SourceKey)
	if err != nil {
		return port.PlatformVideo{}, shop, err
	}
	defer body.Close()

	result, err := s.platform.Upload(ctx, port.PlatformUploadInput{
		RefreshToken: token,
		Title:        job.Title,
		Description:  job.SerialNo,
		Body:         body,
		SizeBytes:    info.SizeBytes,
	})
	if err != nil {
		return port.PlatformVideo{}, shop, fmt.Errorf("platform upload: %w", err)
	}
	return result, shop, nil
}

// fail moves the job to its terminal state and notifies the shop once. The
// status check at the top of ProcessUpload keeps a redelivered task from
// mailing again.
func (s *uploadProcessorSrv) fail(ctx context.Context, job *model.UploadJob, shop *model.Shop, reason string) {
	if err := s.jobs.MarkFailed(ctx, job.ID, reason); err != nil {
		log.Printf("failed marking upload job #%s failed: %v", job.ID, err)
		return
	}
	log.Printf("❌ upload job #%s failed permanently: %s", job.ID, reason)

	if shop == nil || shop.NotifyEmail == "" {
		return
	}
	if err := s.notifier.SendUploadFailed(ctx, shop.NotifyEmail, job.Title, reason); err != nil {
		log.Printf("failed sending failure mail for upload job #%s: %v", job.ID, err)
	}
}
