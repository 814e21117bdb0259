package auth

import "github.com/tagreel/videos-ms-go/internal/model"

// Action is one of the operations a caller may attempt on a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource names the kind of resource an action targets.
type Resource string

const (
	ResourceVideo        Resource = "video"
	ResourceShop         Resource = "shop"
	ResourceOrganization Resource = "organization"
)

// Scope carries the target resource's tenant coordinates.
type Scope struct {
	Resource       Resource
	OrganizationID string
	ShopID         string
}

// Reason is a machine-readable denial reason. The three values map to
// different HTTP-level outcomes upstream, so they must stay distinct.
type Reason string

const (
	ReasonWrongTenant      Reason = "wrong_tenant"
	ReasonInsufficientRole Reason = "insufficient_role"
	ReasonMissingAttribute Reason = "missing_attribute"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Reason: r} }

// Authorize is the single authorization decision point. It is a pure
// function: callers are responsible for logging the decision.
//
// Rules are evaluated in precedence order, first match wins:
//  1. system-admin: allow everything.
//  2. organization-admin: list/read/update/delete within own organization,
//     create shops and videos within own organization.
//  3. shop-admin/shop-user: list/read within own shop; shop-admin may also
//     create and delete videos of their shop. No create/update of
//     organizations or shops.
//  4. anything else: deny.
func Authorize(p model.Principal, action Action, scope Scope) Decision {
	if p.HasRole(model.RoleSystemAdmin) {
		return allow()
	}

	if p.HasRole(model.RoleOrganizationAdmin) {
		if p.OrganizationID == "" {
			return deny(ReasonMissingAttribute)
		}
		switch action {
		case ActionCreate:
			if scope.Resource != ResourceShop && scope.Resource != ResourceVideo {
				return deny(ReasonInsufficientRole)
			}
			if scope.OrganizationID != p.OrganizationID {
				return deny(ReasonWrongTenant)
			}
			return allow()
		case ActionList, ActionRead, ActionUpdate, ActionDelete:
			if scope.OrganizationID == "" {
				return deny(ReasonMissingAttribute)
			}
			if scope.OrganizationID != p.OrganizationID {
				return deny(ReasonWrongTenant)
			}
			return allow()
		}
		return deny(ReasonInsufficientRole)
	}

	if p.HasAnyRole(model.RoleShopAdmin, model.RoleShopUser) {
		if p.ShopID == "" {
			return deny(ReasonMissingAttribute)
		}
		switch action {
		case ActionList, ActionRead:
			if scope.ShopID == "" {
				return deny(ReasonMissingAttribute)
			}
			if scope.ShopID != p.ShopID {
				return deny(ReasonWrongTenant)
			}
			return allow()
		case ActionCreate, ActionDelete:
			if scope.Resource != ResourceVideo || !p.HasRole(model.RoleShopAdmin) {
				return deny(ReasonInsufficientRole)
			}
			if scope.ShopID == "" {
				return deny(ReasonMissingAttribute)
			}
			if scope.ShopID != p.ShopID {
				return deny(ReasonWrongTenant)
			}
			return allow()
		}
		return deny(ReasonInsufficientRole)
	}

	return deny(ReasonInsufficientRole)
}
