package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

func externalVideoFixture(jobID uuid.UUID) *model.ExternalVideo {
	return &model.ExternalVideo{
		UploadJobID: jobID,
		ExternalID:  "yt-abc123",
		ExternalURL: "https://youtu.be/yt-abc123",
		Visibility:  "unlisted",
	}
}

func TestUploadJobRepository_MarkProcessing_ReclaimIsNotAnError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewUploadJobRepository(sqlDB)
	jobID := uuid.NewUUID()

	// MySQL reports zero affected rows for a no-change update, which is
	// the re-claim after a crashed attempt. That must not fail the claim.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE upload_jobs SET status = 'processing'`)).
		WithArgs(jobID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.MarkProcessing(context.Background(), jobID); err != nil {
		t.Errorf("MarkProcessing() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUploadJobRepository_MarkDone_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewUploadJobRepository(sqlDB)
	jobID := uuid.NewUUID()
	completedAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE upload_jobs SET status = 'done', completed_at = ?`)).
		WithArgs(completedAt, jobID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkDone(context.Background(), jobID, completedAt); err != nil {
		t.Errorf("MarkDone() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUploadJobRepository_MarkDone_TerminalJobStaysTerminal(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewUploadJobRepository(sqlDB)
	jobID := uuid.NewUUID()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE upload_jobs SET status = 'done', completed_at = ?`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.MarkDone(context.Background(), jobID, time.Now()); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for a job no longer processing, got %v", err)
	}
}

func TestUploadJobRepository_MarkFailed_TerminalJobStaysTerminal(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewUploadJobRepository(sqlDB)
	jobID := uuid.NewUUID()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE upload_jobs SET status = 'failed', last_error = ?`)).
		WithArgs("quota exceeded", jobID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.MarkFailed(context.Background(), jobID, "quota exceeded"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for an already-terminal job, got %v", err)
	}
}

func TestUploadJobRepository_IncrementAttempt_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewUploadJobRepository(sqlDB)
	jobID := uuid.NewUUID()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE upload_jobs SET attempt_count = attempt_count + 1, last_error = ?`)).
		WithArgs("connection reset", jobID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.IncrementAttempt(context.Background(), jobID, "connection reset"); err != nil {
		t.Errorf("IncrementAttempt() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUploadJobRepository_InsertExternalVideo_DuplicateIsNoop(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewUploadJobRepository(sqlDB)
	jobID := uuid.NewUUID()

	mock.ExpectExec(regexp.QuoteMeta(`ON DUPLICATE KEY UPDATE upload_job_id = upload_job_id`)).
		WithArgs(jobID, "yt-abc123", "https://youtu.be/yt-abc123", "unlisted").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.InsertExternalVideo(context.Background(), externalVideoFixture(jobID))
	if err != nil {
		t.Errorf("InsertExternalVideo() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
