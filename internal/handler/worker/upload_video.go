package worker

import (
	"context"
	"errors"
	"fmt"
	"log"

	guuid "github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/task"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// UploadVideoHandler handles one delivery of an upload-video task. It works
// out from the queue metadata whether this is the final attempt, and turns
// permanent failures into asynq.SkipRetry so the queue stops redelivering.
func UploadVideoHandler(ctx context.Context, t *asynq.Task, svc port.UploadProcessor) error {
	p, err := task.ParseVideoUploadPayload(t)
	if err != nil {
		log.Printf("❌  Invalid upload-video payload: %v", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	id, err := guuid.Parse(p.JobID)
	if err != nil {
		log.Printf("❌  Invalid upload job ID %q: %v", p.JobID, err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	finalAttempt := retried >= maxRetry

	if err := svc.ProcessUpload(ctx, uuid.UUID(id), finalAttempt); err != nil {
		log.Printf("❌  Failed attempt for upload job #%s: %v", id, err)
		if errors.Is(err, port.ErrPermanent) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	log.Printf("✅  Successfully processed upload job #%s", id)
	return nil
}
