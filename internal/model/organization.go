package model

import "time"

type OrgType string

const (
	OrgTypeAgency OrgType = "agency"
	OrgTypeBranch OrgType = "branch"
)

type OrgStatus string

const (
	OrgStatusActive    OrgStatus = "active"
	OrgStatusInactive  OrgStatus = "inactive"
	OrgStatusSuspended OrgStatus = "suspended"
)

// Organization is one tenant tier: an agency, or a branch owned by one.
// A branch always carries the agency's ID in ParentID; the level is derived
// from OrgType, never stored separately.
type Organization struct {
	ID           string    `json:"id"`
	OrgType      OrgType   `json:"org_type"`
	ParentID     *string   `json:"parent_id,omitempty"`
	Name         string    `json:"name"`
	UnitPrice    int64     `json:"unit_price"`
	Status       OrgStatus `json:"status"`
	TotalVideos  int64     `json:"total_videos"`
	TotalStorage int64     `json:"total_storage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
