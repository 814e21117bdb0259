package model

import "time"

// AuditRecord captures one security-relevant action and its outcome.
// Records are append-only and emitted on every delete attempt, including
// denied ones.
type AuditRecord struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Outcome   string    `json:"outcome"`
	VideoID   string    `json:"video_id"`
	ActorSub  string    `json:"actor_sub"`
	ActorOrg  string    `json:"actor_org"`
	ActorShop string    `json:"actor_shop"`
	SourceIP  string    `json:"source_ip"`
	CreatedAt time.Time `json:"created_at"`
}
