package model

import (
	"time"

	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
)

// UploadJob is one unit of asynchronous work: transferring a shop's source
// object to the external video platform. Once done or failed it is immutable.
type UploadJob struct {
	ID           uuid.UUID  `json:"id"`
	ShopID       string     `json:"shop_id"`
	SourceKey    string     `json:"source_key"`
	Title        string     `json:"title"`
	SerialNo     string     `json:"serial_no"`
	Status       JobStatus  `json:"status"`
	AttemptCount int        `json:"attempt_count"`
	LastError    *string    `json:"last_error,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ExternalVideo links an upload job to the reference returned by the
// external platform. Created exactly once, on the done transition.
type ExternalVideo struct {
	UploadJobID uuid.UUID `json:"upload_job_id"`
	ExternalID  string    `json:"external_id"`
	ExternalURL string    `json:"external_url"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
}
