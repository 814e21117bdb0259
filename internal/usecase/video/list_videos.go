package video

import (
	"context"
	"strings"

	"github.com/tagreel/videos-ms-go/internal/auth"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type videoListerSrv struct {
	repo port.VideoRepository
}

// compile-time check: *videoListerSrv must satisfy port.VideoLister
var _ port.VideoLister = (*videoListerSrv)(nil)

// NewVideoLister constructs a port.VideoLister implementation.
func NewVideoLister(repo port.VideoRepository) port.VideoLister {
	return &videoListerSrv{repo: repo}
}

// ListVideos returns one page of videos within the caller's scope. The
// caller's roles pick the narrowest repository query; search and status
// filters are applied to the fetched page, so a filtered page may come back
// shorter than the limit without being the last one.
func (s *videoListerSrv) ListVideos(ctx context.Context, in port.ListVideosInput) (port.ListVideosOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	page, err := s.fetch(ctx, in, limit)
	if err != nil {
		return port.ListVideosOutput{}, err
	}

	out := port.ListVideosOutput{
		Videos:        make([]port.VideoSummary, 0, len(page.Videos)),
		NextPageToken: page.NextPageToken,
	}
	for _, v := range page.Videos {
		if !matchesFilters(v, in) {
			continue
		}
		out.Videos = append(out.Videos, port.VideoSummary{
			ID:             v.ID,
			OrganizationID: v.OrganizationID,
			ShopID:         v.ShopID,
			Title:          v.Title,
			Description:    v.Description,
			FileSize:       v.FileSize,
			UploadedAt:     v.UploadedAt,
		})
	}
	return out, nil
}

func (s *videoListerSrv) fetch(ctx context.Context, in port.ListVideosInput, limit int) (port.VideoPage, error) {
	p := in.Principal

	if p.HasRole(model.RoleSystemAdmin) {
		if in.OrganizationID != "" {
			return s.repo.ListByOrganization(ctx, in.OrganizationID, limit, in.PageToken)
		}
		return s.repo.ListAll(ctx, limit, in.PageToken)
	}

	if p.HasRole(model.RoleOrganizationAdmin) {
		if p.OrganizationID == "" {
			return port.VideoPage{}, ErrForbiddenMissingAttribute
		}
		if in.OrganizationID != "" && in.OrganizationID != p.OrganizationID {
			return port.VideoPage{}, ErrForbiddenTenant
		}
		return s.repo.ListByOrganization(ctx, p.OrganizationID, limit, in.PageToken)
	}

	if p.HasAnyRole(model.RoleShopAdmin, model.RoleShopUser) {
		d := auth.Authorize(p, auth.ActionList, auth.Scope{Resource: auth.ResourceVideo, OrganizationID: p.OrganizationID, ShopID: p.ShopID})
		if !d.Allowed {
			return port.VideoPage{}, denyToErr(d.Reason)
		}
		return s.repo.ListByShop(ctx, p.ShopID, limit, in.PageToken)
	}

	return port.VideoPage{}, ErrForbiddenRole
}

func matchesFilters(v model.Video, in port.ListVideosInput) bool {
	if in.Status != "" && v.Status != in.Status {
		return false
	}
	if in.Search == "" {
		return true
	}
	needle := strings.ToLower(in.Search)
	return strings.Contains(strings.ToLower(v.Title), needle) ||
		strings.Contains(strings.ToLower(v.Description), needle) ||
		strings.Contains(strings.ToLower(v.ID.String()), needle)
}
