package model

import (
	"time"

	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type VideoStatus string

const (
	VideoStatusActive  VideoStatus = "active"
	VideoStatusDeleted VideoStatus = "deleted"
)

// Video is the metadata record for one uploaded asset. OrganizationID and
// ShopID are immutable after creation and are the sole basis for scoping;
// UploadedAt drives the deletion grace window and is never mutated.
type Video struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID string      `json:"organization_id"`
	ShopID         string      `json:"shop_id"`
	ObjectKey      string      `json:"object_key"`
	ThumbnailKey   *string     `json:"thumbnail_key,omitempty"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	FileSize       int64       `json:"file_size"`
	DurationSecs   int64       `json:"duration_seconds"`
	ViewCount      int64       `json:"view_count"`
	Status         VideoStatus `json:"status"`
	UploaderSub    string      `json:"uploader_sub"`
	UploadedAt     time.Time   `json:"uploaded_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
