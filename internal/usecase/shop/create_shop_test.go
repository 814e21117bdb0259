package shop

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/tagreel/videos-ms-go/internal/mock"
	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/usecase/video"
)

func orgAdmin() model.Principal {
	return model.Principal{
		Subject:        "admin-1",
		Roles:          []model.Role{model.RoleOrganizationAdmin},
		OrganizationID: "org-1",
	}
}

func activeOrg() *model.Organization {
	return &model.Organization{
		ID:      "org-1",
		OrgType: model.OrgTypeAgency,
		Name:    "Agency One",
		Status:  model.OrgStatusActive,
	}
}

func createInput(p model.Principal) port.CreateShopInput {
	return port.CreateShopInput{
		Principal:      p,
		OrganizationID: "org-1",
		Name:           "Main Street",
		Email:          "shop@example.com",
		Phone:          "+33100000000",
	}
}

func TestCreateShop_Success(t *testing.T) {
	shops := &mock.ShopRepo{}
	orgs := &mock.OrgRepo{OrgRecord: activeOrg()}
	svc := NewShopCreator(shops, orgs)

	out, err := svc.CreateShop(context.Background(), createInput(orgAdmin()))
	if err != nil {
		t.Fatalf("CreateShop() returned unexpected error: %v", err)
	}

	if shops.Created == nil {
		t.Fatal("expected a shop row to be created")
	}
	if out.ShopID != shops.Created.ID {
		t.Errorf("output ShopID = %q; created row ID = %q", out.ShopID, shops.Created.ID)
	}
	if !strings.HasPrefix(out.ShopID, "org-1-shop-") {
		t.Errorf("shop ID %q does not embed the organization ID", out.ShopID)
	}
	if shops.Created.Status != model.OrgStatusActive {
		t.Errorf("new shop status = %q; want active", shops.Created.Status)
	}
	if shops.Created.NotifyEmail != "shop@example.com" {
		t.Errorf("NotifyEmail = %q; want fallback to the contact email", shops.Created.NotifyEmail)
	}
}

func TestCreateShop_NotifyEmailKeptWhenSet(t *testing.T) {
	shops := &mock.ShopRepo{}
	orgs := &mock.OrgRepo{OrgRecord: activeOrg()}
	svc := NewShopCreator(shops, orgs)

	in := createInput(orgAdmin())
	in.NotifyEmail = "uploads@example.com"

	if _, err := svc.CreateShop(context.Background(), in); err != nil {
		t.Fatalf("CreateShop() returned unexpected error: %v", err)
	}
	if shops.Created.NotifyEmail != "uploads@example.com" {
		t.Errorf("NotifyEmail = %q; want the explicit address", shops.Created.NotifyEmail)
	}
}

func TestCreateShop_SystemAdminAnyOrganization(t *testing.T) {
	shops := &mock.ShopRepo{}
	orgs := &mock.OrgRepo{OrgRecord: activeOrg()}
	svc := NewShopCreator(shops, orgs)

	p := model.Principal{Subject: "root", Roles: []model.Role{model.RoleSystemAdmin}}
	if _, err := svc.CreateShop(context.Background(), createInput(p)); err != nil {
		t.Fatalf("CreateShop() returned unexpected error: %v", err)
	}
}

func TestCreateShop_CrossOrganizationForbidden(t *testing.T) {
	shops := &mock.ShopRepo{}
	orgs := &mock.OrgRepo{OrgRecord: activeOrg()}
	svc := NewShopCreator(shops, orgs)

	p := orgAdmin()
	p.OrganizationID = "org-2"

	_, err := svc.CreateShop(context.Background(), createInput(p))
	if !errors.Is(err, video.ErrForbiddenTenant) {
		t.Fatalf("expected ErrForbiddenTenant, got %v", err)
	}
	if orgs.GetCalled {
		t.Error("denied caller must not trigger an organization lookup")
	}
	if shops.Created != nil {
		t.Error("denied caller must not create a shop")
	}
}

func TestCreateShop_ShopAdminForbidden(t *testing.T) {
	shops := &mock.ShopRepo{}
	orgs := &mock.OrgRepo{OrgRecord: activeOrg()}
	svc := NewShopCreator(shops, orgs)

	p := model.Principal{
		Subject:        "user-1",
		Roles:          []model.Role{model.RoleShopAdmin},
		OrganizationID: "org-1",
		ShopID:         "org-1-shop-1",
	}

	if _, err := svc.CreateShop(context.Background(), createInput(p)); !errors.Is(err, video.ErrForbiddenRole) {
		t.Fatalf("expected ErrForbiddenRole, got %v", err)
	}
}

func TestCreateShop_OrganizationNotFound(t *testing.T) {
	shops := &mock.ShopRepo{}
	orgs := &mock.OrgRepo{GetErr: sql.ErrNoRows}
	svc := NewShopCreator(shops, orgs)

	if _, err := svc.CreateShop(context.Background(), createInput(orgAdmin())); !errors.Is(err, ErrOrganizationNotFound) {
		t.Fatalf("expected ErrOrganizationNotFound, got %v", err)
	}
	if shops.Created != nil {
		t.Error("missing organization must not gain a shop")
	}
}

func TestCreateShop_SuspendedOrganization(t *testing.T) {
	org := activeOrg()
	org.Status = model.OrgStatusSuspended

	shops := &mock.ShopRepo{}
	orgs := &mock.OrgRepo{OrgRecord: org}
	svc := NewShopCreator(shops, orgs)

	if _, err := svc.CreateShop(context.Background(), createInput(orgAdmin())); !errors.Is(err, ErrOrganizationNotActive) {
		t.Fatalf("expected ErrOrganizationNotActive, got %v", err)
	}
}

func TestCreateShop_DuplicateIDPassesThrough(t *testing.T) {
	shops := &mock.ShopRepo{CreateErr: port.ErrAlreadyExists}
	orgs := &mock.OrgRepo{OrgRecord: activeOrg()}
	svc := NewShopCreator(shops, orgs)

	if _, err := svc.CreateShop(context.Background(), createInput(orgAdmin())); !errors.Is(err, port.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
