package video

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type intentIssuerSrv struct {
	repo   port.VideoRepository
	strg   port.Storage
	bucket string
	expiry time.Duration
}

// compile-time check: *intentIssuerSrv must satisfy port.IntentIssuer
var _ port.IntentIssuer = (*intentIssuerSrv)(nil)

// NewIntentIssuer constructs a port.IntentIssuer implementation.
func NewIntentIssuer(repo port.VideoRepository, strg port.Storage, bucket string, expiry time.Duration) port.IntentIssuer {
	return &intentIssuerSrv{repo: repo, strg: strg, bucket: bucket, expiry: expiry}
}

// IssueUploadIntent records the video metadata, then hands the caller a
// presigned write URL. The row exists before the object does: a client that
// never uploads leaves behind metadata pointing at a missing object.
func (s *intentIssuerSrv) IssueUploadIntent(ctx context.Context, in port.IssueUploadIntentInput) (port.IssueUploadIntentOutput, error) {
	p := in.Principal
	if !p.HasAnyRole(model.RoleSystemAdmin, model.RoleOrganizationAdmin, model.RoleShopAdmin) {
		return port.IssueUploadIntentOutput{}, ErrForbiddenRole
	}
	if p.OrganizationID == "" || p.ShopID == "" {
		return port.IssueUploadIntentOutput{}, ErrForbiddenMissingAttribute
	}

	now := time.Now().UTC()
	id := uuid.NewUUID()
	objectKey := fmt.Sprintf("%s/%s/%s/%s", p.OrganizationID, p.ShopID, id, in.FileName)

	vid := &model.Video{
		ID:             id,
		OrganizationID: p.OrganizationID,
		ShopID:         p.ShopID,
		ObjectKey:      objectKey,
		Title:          in.Title,
		Description:    in.Description,
		FileSize:       in.FileSize,
		DurationSecs:   in.DurationSecs,
		Status:         model.VideoStatusActive,
		UploaderSub:    p.Subject,
		UploadedAt:     now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, vid); err != nil {
		return port.IssueUploadIntentOutput{}, err
	}

	url, err := s.strg.GeneratePresignedUploadURL(ctx, s.bucket, objectKey, s.expiry)
	if err != nil {
		return port.IssueUploadIntentOutput{}, err
	}

	log.Printf("issued upload intent #%s for shop %q (%d bytes)", id, p.ShopID, in.FileSize)

	return port.IssueUploadIntentOutput{
		VideoID:   id,
		UploadURL: url,
		ObjectKey: objectKey,
		ExpiresIn: int(s.expiry.Seconds()),
	}, nil
}
