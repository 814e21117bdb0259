package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type UploadJobRepository struct {
	db *sql.DB
}

// compile-time check: *UploadJobRepository must satisfy port.UploadJobRepository
var _ port.UploadJobRepository = (*UploadJobRepository)(nil)

func NewUploadJobRepository(db *sql.DB) *UploadJobRepository {
	return &UploadJobRepository{db: db}
}

func (r *UploadJobRepository) Create(ctx context.Context, job *model.UploadJob) error {
	log.Printf("creating database record for upload job #%s, at status %q...", job.ID, job.Status)

	const query = `
      INSERT INTO upload_jobs
        (id, shop_id, source_key, title, serial_no, status, attempt_count, last_error, completed_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.ShopID, job.SourceKey, job.Title, job.SerialNo,
		job.Status, job.AttemptCount, job.LastError, job.CompletedAt,
	)
	return err
}

func (r *UploadJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.UploadJob, error) {
	log.Printf("fetching upload job #%s from the database...", id)

	const query = `
      SELECT id, shop_id, source_key, title, serial_no, status, attempt_count, last_error, completed_at, created_at, updated_at
      FROM upload_jobs
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var job model.UploadJob
	if err := row.Scan(
		&job.ID, &job.ShopID, &job.SourceKey, &job.Title, &job.SerialNo,
		&job.Status, &job.AttemptCount, &job.LastError, &job.CompletedAt,
		&job.CreatedAt, &job.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &job, nil
}

// MarkProcessing claims the job. Claiming is idempotent: a job already in
// processing (a prior crashed attempt) is claimed again; the guard only
// keeps terminal jobs terminal. RowsAffected is not checked because MySQL
// reports zero for a no-change update, which is exactly the re-claim case.
func (r *UploadJobRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	log.Printf("marking upload job #%s as processing...", id)

	const query = `
      UPDATE upload_jobs SET status = 'processing'
      WHERE id = ? AND status IN ('queued', 'processing')
    `
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UploadJobRepository) IncrementAttempt(ctx context.Context, id uuid.UUID, lastError string) error {
	log.Printf("recording failed attempt for upload job #%s...", id)

	const query = `
      UPDATE upload_jobs SET attempt_count = attempt_count + 1, last_error = ?
      WHERE id = ? AND status IN ('queued', 'processing')
    `
	return r.execExpectingRow(ctx, query, lastError, id)
}

// MarkDone finalises the job. Conditional on processing so a redelivered
// copy of an already-done job cannot complete twice.
func (r *UploadJobRepository) MarkDone(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	log.Printf("marking upload job #%s as done...", id)

	const query = `
      UPDATE upload_jobs SET status = 'done', completed_at = ?
      WHERE id = ? AND status = 'processing'
    `
	return r.execExpectingRow(ctx, query, completedAt, id)
}

func (r *UploadJobRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	log.Printf("marking upload job #%s as failed...", id)

	const query = `
      UPDATE upload_jobs SET status = 'failed', last_error = ?
      WHERE id = ? AND status IN ('queued', 'processing')
    `
	return r.execExpectingRow(ctx, query, lastError, id)
}

// InsertExternalVideo records the platform reference. The job ID is the
// primary key, so a crash-redelivery replay cannot create a second record;
// the replayed insert is a no-op.
func (r *UploadJobRepository) InsertExternalVideo(ctx context.Context, rec *model.ExternalVideo) error {
	log.Printf("recording external video %q for upload job #%s...", rec.ExternalID, rec.UploadJobID)

	const query = `
      INSERT INTO external_videos (upload_job_id, external_id, external_url, visibility)
      VALUES (?, ?, ?, ?)
      ON DUPLICATE KEY UPDATE upload_job_id = upload_job_id
    `
	_, err := r.db.ExecContext(ctx, query, rec.UploadJobID, rec.ExternalID, rec.ExternalURL, rec.Visibility)
	return err
}

func (r *UploadJobRepository) GetExternalVideo(ctx context.Context, jobID uuid.UUID) (*model.ExternalVideo, error) {
	log.Printf("fetching external video for upload job #%s...", jobID)

	const query = `
      SELECT upload_job_id, external_id, external_url, visibility, created_at
      FROM external_videos
      WHERE upload_job_id = ?
    `
	row := r.db.QueryRowContext(ctx, query, jobID)
	var rec model.ExternalVideo
	if err := row.Scan(&rec.UploadJobID, &rec.ExternalID, &rec.ExternalURL, &rec.Visibility, &rec.CreatedAt); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *UploadJobRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
