package auth

import (
	"testing"

	"github.com/tagreel/videos-ms-go/internal/model"
)

func principal(role model.Role, org, shop string) model.Principal {
	return model.Principal{
		Subject:        "sub",
		Roles:          []model.Role{role},
		OrganizationID: org,
		ShopID:         shop,
	}
}

func videoScope(org, shop string) Scope {
	return Scope{Resource: ResourceVideo, OrganizationID: org, ShopID: shop}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		p          model.Principal
		action     Action
		scope      Scope
		wantAllow  bool
		wantReason Reason
	}{
		{
			name:      "system admin may do anything",
			p:         principal(model.RoleSystemAdmin, "", ""),
			action:    ActionDelete,
			scope:     videoScope("org-9", "org-9-shop-3"),
			wantAllow: true,
		},
		{
			name:      "org admin reads own org",
			p:         principal(model.RoleOrganizationAdmin, "org-1", ""),
			action:    ActionRead,
			scope:     videoScope("org-1", "org-1-shop-1"),
			wantAllow: true,
		},
		{
			name:       "org admin denied cross org",
			p:          principal(model.RoleOrganizationAdmin, "org-1", ""),
			action:     ActionRead,
			scope:      videoScope("org-2", "org-2-shop-1"),
			wantReason: ReasonWrongTenant,
		},
		{
			name:      "org admin deletes own org video",
			p:         principal(model.RoleOrganizationAdmin, "org-1", ""),
			action:    ActionDelete,
			scope:     videoScope("org-1", "org-1-shop-1"),
			wantAllow: true,
		},
		{
			name:      "org admin creates shop in own org",
			p:         principal(model.RoleOrganizationAdmin, "org-1", ""),
			action:    ActionCreate,
			scope:     Scope{Resource: ResourceShop, OrganizationID: "org-1"},
			wantAllow: true,
		},
		{
			name:      "org admin creates video in own org",
			p:         principal(model.RoleOrganizationAdmin, "org-1", ""),
			action:    ActionCreate,
			scope:     videoScope("org-1", "org-1-shop-1"),
			wantAllow: true,
		},
		{
			name:       "org admin denied creating video cross org",
			p:          principal(model.RoleOrganizationAdmin, "org-1", ""),
			action:     ActionCreate,
			scope:      videoScope("org-2", "org-2-shop-1"),
			wantReason: ReasonWrongTenant,
		},
		{
			name:      "shop admin creates video in own shop",
			p:         principal(model.RoleShopAdmin, "org-1", "org-1-shop-1"),
			action:    ActionCreate,
			scope:     videoScope("org-1", "org-1-shop-1"),
			wantAllow: true,
		},
		{
			name:       "shop admin denied creating video in another shop",
			p:          principal(model.RoleShopAdmin, "org-1", "org-1-shop-1"),
			action:     ActionCreate,
			scope:      videoScope("org-1", "org-1-shop-2"),
			wantReason: ReasonWrongTenant,
		},
		{
			name:       "shop user denied creating video",
			p:          principal(model.RoleShopUser, "org-1", "org-1-shop-1"),
			action:     ActionCreate,
			scope:      videoScope("org-1", "org-1-shop-1"),
			wantReason: ReasonInsufficientRole,
		},
		{
			name:       "org admin denied creating shop elsewhere",
			p:          principal(model.RoleOrganizationAdmin, "org-1", ""),
			action:     ActionCreate,
			scope:      Scope{Resource: ResourceShop, OrganizationID: "org-2"},
			wantReason: ReasonWrongTenant,
		},
		{
			name:       "org admin denied creating organizations",
			p:          principal(model.RoleOrganizationAdmin, "org-1", ""),
			action:     ActionCreate,
			scope:      Scope{Resource: ResourceOrganization, OrganizationID: "org-1"},
			wantReason: ReasonInsufficientRole,
		},
		{
			name:       "org admin without org attribute",
			p:          principal(model.RoleOrganizationAdmin, "", ""),
			action:     ActionRead,
			scope:      videoScope("org-1", "org-1-shop-1"),
			wantReason: ReasonMissingAttribute,
		},
		{
			name:      "shop admin reads own shop",
			p:         principal(model.RoleShopAdmin, "org-1", "org-1-shop-1"),
			action:    ActionRead,
			scope:     videoScope("org-1", "org-1-shop-1"),
			wantAllow: true,
		},
		{
			name:      "shop admin deletes own shop video",
			p:         principal(model.RoleShopAdmin, "org-1", "org-1-shop-1"),
			action:    ActionDelete,
			scope:     videoScope("org-1", "org-1-shop-1"),
			wantAllow: true,
		},
		{
			name:       "shop admin denied cross shop",
			p:          principal(model.RoleShopAdmin, "org-1", "org-1-shop-1"),
			action:     ActionDelete,
			scope:      videoScope("org-1", "org-1-shop-2"),
			wantReason: ReasonWrongTenant,
		},
		{
			name:      "shop user reads own shop",
			p:         principal(model.RoleShopUser, "org-1", "org-1-shop-1"),
			action:    ActionRead,
			scope:     videoScope("org-1", "org-1-shop-1"),
			wantAllow: true,
		},
		{
			name:       "shop user denied delete",
			p:          principal(model.RoleShopUser, "org-1", "org-1-shop-1"),
			action:     ActionDelete,
			scope:      videoScope("org-1", "org-1-shop-1"),
			wantReason: ReasonInsufficientRole,
		},
		{
			name:       "shop admin without shop attribute",
			p:          principal(model.RoleShopAdmin, "org-1", ""),
			action:     ActionRead,
			scope:      videoScope("org-1", "org-1-shop-1"),
			wantReason: ReasonMissingAttribute,
		},
		{
			name:       "shop admin denied update",
			p:          principal(model.RoleShopAdmin, "org-1", "org-1-shop-1"),
			action:     ActionUpdate,
			scope:      Scope{Resource: ResourceShop, OrganizationID: "org-1", ShopID: "org-1-shop-1"},
			wantReason: ReasonInsufficientRole,
		},
		{
			name:       "unknown role denied",
			p:          model.Principal{Subject: "sub", Roles: []model.Role{"auditor"}},
			action:     ActionRead,
			scope:      videoScope("org-1", "org-1-shop-1"),
			wantReason: ReasonInsufficientRole,
		},
		{
			name:       "no roles denied",
			p:          model.Principal{Subject: "sub"},
			action:     ActionList,
			scope:      videoScope("org-1", "org-1-shop-1"),
			wantReason: ReasonInsufficientRole,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(tc.p, tc.action, tc.scope)
			if d.Allowed != tc.wantAllow {
				t.Fatalf("Allowed = %v; want %v (reason %q)", d.Allowed, tc.wantAllow, d.Reason)
			}
			if !tc.wantAllow && d.Reason != tc.wantReason {
				t.Errorf("Reason = %q; want %q", d.Reason, tc.wantReason)
			}
		})
	}
}

func TestAuthorize_SystemAdminWinsOverOtherRoles(t *testing.T) {
	p := model.Principal{
		Subject:        "sub",
		Roles:          []model.Role{model.RoleShopUser, model.RoleSystemAdmin},
		OrganizationID: "org-1",
		ShopID:         "org-1-shop-1",
	}
	d := Authorize(p, ActionDelete, videoScope("org-9", "org-9-shop-1"))
	if !d.Allowed {
		t.Fatalf("expected the system-admin role to win, got denial %q", d.Reason)
	}
}
