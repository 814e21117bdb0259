package video

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/tagreel/videos-ms-go/internal/auth"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
)

// audit outcomes for delete attempts; every attempt writes exactly one.
const (
	auditActionDelete = "video.delete"

	outcomeDeleted      = "deleted"
	outcomeNotFound     = "not_found"
	outcomeGraceExpired = "grace_expired"
	outcomeError        = "error"
	deniedPrefix        = "denied_"
)

type videoDeleterSrv struct {
	repo        port.VideoRepository
	audit       port.AuditRepository
	cache       port.Cache
	strg        port.Storage
	bucket      string
	graceWindow time.Duration
	now         func() time.Time
}

// compile-time check: *videoDeleterSrv must satisfy port.VideoDeleter
var _ port.VideoDeleter = (*videoDeleterSrv)(nil)

// NewVideoDeleter constructs a port.VideoDeleter implementation.
func NewVideoDeleter(repo port.VideoRepository, audit port.AuditRepository, cache port.Cache, strg port.Storage, bucket string, graceWindow time.Duration) port.VideoDeleter {
	return &videoDeleterSrv{
		repo:        repo,
		audit:       audit,
		cache:       cache,
		strg:        strg,
		bucket:      bucket,
		graceWindow: graceWindow,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// DeleteVideo removes a video for an authorized caller inside the grace
// window. The row goes first: once DeleteActive succeeds the delete is
// committed, and object removal or cache invalidation failures are logged
// but never surfaced.
func (s *videoDeleterSrv) DeleteVideo(ctx context.Context, in port.DeleteVideoInput) error {
	vid, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeAudit(ctx, in, outcomeNotFound)
			return ErrNotFound
		}
		return err
	}

	d := auth.Authorize(in.Principal, auth.ActionDelete, auth.Scope{
		Resource:       auth.ResourceVideo,
		OrganizationID: vid.OrganizationID,
		ShopID:         vid.ShopID,
	})
	if !d.Allowed {
		s.writeAudit(ctx, in, deniedPrefix+string(d.Reason))
		return denyToErr(d.Reason)
	}

	if s.now().Sub(vid.UploadedAt) > s.graceWindow {
		s.writeAudit(ctx, in, outcomeGraceExpired)
		return ErrGracePeriodExpired
	}

	if err := s.repo.DeleteActive(ctx, vid.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// someone else deleted it between our read and our write
			s.writeAudit(ctx, in, outcomeNotFound)
			return ErrNotFound
		}
		s.writeAudit(ctx, in, outcomeError)
		return err
	}

	if err := s.strg.RemoveFile(ctx, s.bucket, vid.ObjectKey); err != nil {
		log.Printf("failed to remove object %q: %v", vid.ObjectKey, err)
	}
	if vid.ThumbnailKey != nil {
		if err := s.strg.RemoveFile(ctx, s.bucket, *vid.ThumbnailKey); err != nil {
			log.Printf("failed to remove thumbnail %q: %v", *vid.ThumbnailKey, err)
		}
	}
	if err := s.cache.DeletePublicDetail(ctx, vid.ID); err != nil {
		log.Printf("failed deleting cache for video #%s: %v", vid.ID, err)
	}

	s.writeAudit(ctx, in, outcomeDeleted)
	return nil
}

func (s *videoDeleterSrv) writeAudit(ctx context.Context, in port.DeleteVideoInput, outcome string) {
	rec := &model.AuditRecord{
		Action:    auditActionDelete,
		Outcome:   outcome,
		VideoID:   in.ID.String(),
		ActorSub:  in.Principal.Subject,
		ActorOrg:  in.Principal.OrganizationID,
		ActorShop: in.Principal.ShopID,
		SourceIP:  in.SourceIP,
		CreatedAt: s.now(),
	}
	if err := s.audit.Insert(ctx, rec); err != nil {
		log.Printf("failed writing audit record for video #%s: %v", in.ID, err)
	}
}
