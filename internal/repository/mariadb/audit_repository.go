package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
)

type AuditRepository struct {
	db *sql.DB
}

// compile-time check: *AuditRepository must satisfy port.AuditRepository
var _ port.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, rec *model.AuditRecord) error {
	log.Printf("recording audit entry %s/%s for video %q...", rec.Action, rec.Outcome, rec.VideoID)

	const query = `
      INSERT INTO audit_logs (action, outcome, video_id, actor_sub, actor_org, actor_shop, source_ip)
      VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		rec.Action, rec.Outcome, rec.VideoID,
		rec.ActorSub, rec.ActorOrg, rec.ActorShop, rec.SourceIP,
	)
	return err
}
