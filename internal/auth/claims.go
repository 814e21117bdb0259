package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tagreel/videos-ms-go/internal/model"
)

var (
	// ErrMissingClaims means a required identity claim is absent or malformed.
	// Extraction fails closed: no default principal is ever synthesised.
	ErrMissingClaims = errors.New("auth: missing or malformed identity claims")
)

// PrincipalFromClaims turns verified identity-provider claims into a typed
// principal. The group list, organization and shop attributes are optional
// at this layer; the policy denies scoped actions when they are absent.
func PrincipalFromClaims(claims jwt.MapClaims) (model.Principal, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return model.Principal{}, ErrMissingClaims
	}

	email, _ := claims["email"].(string)
	groups := toStringSlice(claims["groups"])
	if groups == nil {
		groups = toStringSlice(claims["roles"])
	}

	roles := make([]model.Role, 0, len(groups))
	for _, g := range groups {
		switch model.Role(g) {
		case model.RoleSystemAdmin, model.RoleOrganizationAdmin, model.RoleShopAdmin, model.RoleShopUser:
			roles = append(roles, model.Role(g))
		}
	}

	orgID, _ := claims["org_id"].(string)
	shopID, _ := claims["shop_id"].(string)

	return model.Principal{
		Subject:        sub,
		Email:          email,
		Roles:          roles,
		OrganizationID: orgID,
		ShopID:         shopID,
	}, nil
}

func toStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
