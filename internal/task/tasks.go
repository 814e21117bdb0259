package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tagreel/videos-ms-go/internal/model"
)

const TypeVideoUpload = "upload:video"

// MaxAttempts is the total number of delivery attempts for one upload job:
// the first delivery plus MaxAttempts-1 retries. The queue owns this; the
// worker only learns whether the current attempt is the last one.
const MaxAttempts = 5

// retryBase is the delay before the first redelivery; each further
// redelivery doubles it.
const retryBase = 30 * time.Second

// RetryDelay computes the queue's backoff schedule: 30s, 60s, 120s, 240s.
// Wired into the asynq server config so backoff lives with the queue, not
// with the workers.
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	return retryBase << uint(n)
}

// VideoUploadPayload is the wire contract for one queued upload. Workers
// treat the stored job row as authoritative; the extra fields make the
// message self-describing for queue inspection and replay tooling.
type VideoUploadPayload struct {
	JobID     string `json:"job_id"`
	ShopID    string `json:"shop_id"`
	SourceKey string `json:"source_key"`
	Title     string `json:"title"`
	SerialNo  string `json:"serial_no"`
}

// NewVideoUploadTask creates an Asynq task carrying one upload job.
func NewVideoUploadTask(job *model.UploadJob) (*asynq.Task, error) {
	p := VideoUploadPayload{
		JobID:     job.ID.String(),
		ShopID:    job.ShopID,
		SourceKey: job.SourceKey,
		Title:     job.Title,
		SerialNo:  job.SerialNo,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal video-upload payload: %w", err)
	}
	return asynq.NewTask(TypeVideoUpload, data, asynq.MaxRetry(MaxAttempts-1)), nil
}

// ParseVideoUploadPayload parses the task payload to VideoUploadPayload.
func ParseVideoUploadPayload(t *asynq.Task) (VideoUploadPayload, error) {
	var p VideoUploadPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return VideoUploadPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
