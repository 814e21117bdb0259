package model

// Role is a role group supplied by the identity provider.
type Role string

const (
	RoleSystemAdmin       Role = "system-admin"
	RoleOrganizationAdmin Role = "organization-admin"
	RoleShopAdmin         Role = "shop-admin"
	RoleShopUser          Role = "shop-user"
)

// Principal is the authenticated caller's resolved identity and scope.
// It is reconstructed per request from identity claims and never persisted.
type Principal struct {
	Subject        string
	Email          string
	Roles          []Role
	OrganizationID string
	ShopID         string
}

// HasRole reports whether the principal carries the given role group.
func (p Principal) HasRole(r Role) bool {
	for _, have := range p.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the principal carries at least one of the
// given role groups.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}
