package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tagreel/videos-ms-go/internal/api_context"
	"github.com/tagreel/videos-ms-go/internal/logger"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/usecase/shop"
	"github.com/tagreel/videos-ms-go/internal/validation"
)

type CreateShopRequest struct {
	OrganizationID string `json:"organization_id" validate:"required,max=100"`
	Name           string `json:"name" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Phone          string `json:"phone" validate:"max=30"`
	NotifyEmail    string `json:"notify_email" validate:"omitempty,email,max=255"`
	// PlatformCredential is the envelope-encrypted blob, base64-encoded.
	PlatformCredential string `json:"platform_credential" validate:"omitempty,base64"`
}

// CreateShopHandler provisions a shop inside an organization.
func CreateShopHandler(svc port.ShopCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := api_context.PrincipalFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		var req CreateShopRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "internal", "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		var credential []byte
		if req.PlatformCredential != "" {
			decoded, err := base64.StdEncoding.DecodeString(req.PlatformCredential)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid platform credential encoding", err)
				return
			}
			credential = decoded
		}

		out, err := svc.CreateShop(r.Context(), port.CreateShopInput{
			Principal:          principal,
			OrganizationID:     req.OrganizationID,
			Name:               req.Name,
			Email:              req.Email,
			Phone:              req.Phone,
			NotifyEmail:        req.NotifyEmail,
			PlatformCredential: credential,
		})
		if err != nil {
			writeShopError(w, err)
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		logger.Infof(r.Context(), "✅  Successfully provisioned shop %q", out.ShopID)
	}
}

// writeShopError maps the shop provisioning sentinels; everything else
// falls back to the shared video domain mapping.
func writeShopError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shop.ErrOrganizationNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "Organization not found", nil)
	case errors.Is(err, shop.ErrOrganizationNotActive):
		WriteError(w, http.StatusConflict, "organization_not_active", "Organization is not active", nil)
	case errors.Is(err, port.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, "already_exists", "Shop already exists", nil)
	default:
		writeDomainError(w, err)
	}
}
