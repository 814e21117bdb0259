package port

import (
	"context"

	"github.com/tagreel/videos-ms-go/internal/model"
)

// TaskDispatcher enqueues asynchronous work on the durable job queue.
// The full job is passed so the task payload can carry the wire contract
// fields alongside the job id; workers still treat the stored row as
// authoritative.
type TaskDispatcher interface {
	EnqueueVideoUpload(ctx context.Context, job *model.UploadJob) error
}
