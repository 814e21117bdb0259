package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tagreel/videos-ms-go/internal/auth"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// ErrOrganizationNotFound: the target organization does not exist.
var ErrOrganizationNotFound = errors.New("organization not found")

// ErrOrganizationNotActive: the organization exists but is inactive or
// suspended; no new shops may join it.
var ErrOrganizationNotActive = errors.New("organization is not active")

type shopCreatorSrv struct {
	shops port.ShopRepository
	orgs  port.OrganizationRepository
}

// compile-time check: *shopCreatorSrv must satisfy port.ShopCreator
var _ port.ShopCreator = (*shopCreatorSrv)(nil)

// NewShopCreator constructs a port.ShopCreator implementation.
func NewShopCreator(shops port.ShopRepository, orgs port.OrganizationRepository) port.ShopCreator {
	return &shopCreatorSrv{shops: shops, orgs: orgs}
}

// CreateShop provisions a shop inside an existing, active organization.
// The shop ID embeds the organization ID plus a uniqueness token, so the
// ownership is readable off the ID itself.
func (s *shopCreatorSrv) CreateShop(ctx context.Context, in port.CreateShopInput) (port.CreateShopOutput, error) {
	decision := auth.Authorize(in.Principal, auth.ActionCreate, auth.Scope{
		Resource:       auth.ResourceShop,
		OrganizationID: in.OrganizationID,
	})
	if !decision.Allowed {
		return port.CreateShopOutput{}, denyToErr(decision.Reason)
	}

	org, err := s.orgs.GetByID(ctx, in.OrganizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.CreateShopOutput{}, ErrOrganizationNotFound
		}
		return port.CreateShopOutput{}, err
	}
	if org.Status != model.OrgStatusActive {
		return port.CreateShopOutput{}, ErrOrganizationNotActive
	}

	notifyEmail := in.NotifyEmail
	if notifyEmail == "" {
		notifyEmail = in.Email
	}

	now := time.Now().UTC()
	sh := &model.Shop{
		ID:                 newShopID(in.OrganizationID),
		OrganizationID:     in.OrganizationID,
		Name:               in.Name,
		Email:              in.Email,
		Phone:              in.Phone,
		Status:             model.OrgStatusActive,
		PlatformCredential: in.PlatformCredential,
		NotifyEmail:        notifyEmail,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.shops.Create(ctx, sh); err != nil {
		return port.CreateShopOutput{}, err
	}

	log.Printf("provisioned shop %q in organization %q", sh.ID, org.ID)

	return port.CreateShopOutput{ShopID: sh.ID}, nil
}

func newShopID(orgID string) string {
	token := strings.SplitN(uuid.NewUUID().String(), "-", 2)[0]
	return fmt.Sprintf("%s-shop-%s", orgID, token)
}

// denyToErr converts a policy denial reason into the matching sentinel.
func denyToErr(r auth.Reason) error {
	switch r {
	case auth.ReasonWrongTenant:
		return video.ErrForbiddenTenant
	case auth.ReasonMissingAttribute:
		return video.ErrForbiddenMissingAttribute
	default:
		return video.ErrForbiddenRole
	}
}
