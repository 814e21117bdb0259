package model

import "time"

// Shop belongs to exactly one organization; ShopID is derived from the
// organization ID plus a uniqueness token at creation time.
type Shop struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Status         OrgStatus `json:"status"`
	TotalVideos    int64     `json:"total_videos"`
	TotalStorage   int64     `json:"total_storage"`
	// PlatformCredential is the envelope-encrypted refresh credential for
	// the external video platform. Decrypted only by the vault adapter.
	PlatformCredential []byte    `json:"-"`
	NotifyEmail        string    `json:"notify_email"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
