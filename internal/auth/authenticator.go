package auth

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tagreel/videos-ms-go/internal/model"
)

// Authenticator resolves the principal behind an inbound request. The
// implementation is selected once at startup; there is no runtime switch
// that can disable authentication in production.
type Authenticator interface {
	Authenticate(r *http.Request) (model.Principal, error)
}

// JWTAuthenticator verifies RS256 bearer tokens issued by the identity
// provider and extracts the principal from their claims.
type JWTAuthenticator struct {
	pubKey *rsa.PublicKey
	parser *jwt.Parser
}

var _ Authenticator = (*JWTAuthenticator)(nil)

func NewJWTAuthenticator(publicKeyPEM string) (*JWTAuthenticator, error) {
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("invalid identity provider RSA public key: %w", err)
	}
	return &JWTAuthenticator{
		pubKey: pubKey,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name})),
	}, nil
}

func (a *JWTAuthenticator) Authenticate(r *http.Request) (model.Principal, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return model.Principal{}, ErrMissingClaims
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := jwt.MapClaims{}
	tok, err := a.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodRS256 {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return a.pubKey, nil
	})
	if err != nil || !tok.Valid {
		return model.Principal{}, ErrMissingClaims
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return model.Principal{}, ErrMissingClaims
	}

	return PrincipalFromClaims(claims)
}

// StaticAuthenticator returns a fixed principal for every request. It exists
// for tests and local tooling only and is wired in by explicit configuration.
type StaticAuthenticator struct {
	Principal model.Principal
}

var _ Authenticator = (*StaticAuthenticator)(nil)

// NewStaticAuthenticator parses a JSON-encoded principal, e.g.
// {"subject":"t","roles":["system-admin"]}.
func NewStaticAuthenticator(principalJSON string) (*StaticAuthenticator, error) {
	var p struct {
		Subject        string   `json:"subject"`
		Email          string   `json:"email"`
		Roles          []string `json:"roles"`
		OrganizationID string   `json:"organization_id"`
		ShopID         string   `json:"shop_id"`
	}
	if err := json.Unmarshal([]byte(principalJSON), &p); err != nil {
		return nil, fmt.Errorf("invalid static principal: %w", err)
	}
	if p.Subject == "" {
		return nil, fmt.Errorf("static principal requires a subject")
	}
	roles := make([]model.Role, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, model.Role(r))
	}
	return &StaticAuthenticator{Principal: model.Principal{
		Subject:        p.Subject,
		Email:          p.Email,
		Roles:          roles,
		OrganizationID: p.OrganizationID,
		ShopID:         p.ShopID,
	}}, nil
}

func (a *StaticAuthenticator) Authenticate(_ *http.Request) (model.Principal, error) {
	return a.Principal, nil
}
