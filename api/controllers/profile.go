package controllers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/api/validators"
	"github.com/unideals/unideals-backend/internal/clients"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/logger"
)

type updateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=120"`
	Phone        *string `json:"phone" validate:"omitempty,min=6,max=30"`
	LocationType *string `json:"location_type" validate:"omitempty,oneof=emsi outside"`
	Etage        *string `json:"etage" validate:"omitempty,max=20"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
}

// ClientProfile returns the authenticated client's profile.
func ClientProfile(repo *clients.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := middleware.ActorIDFromContext(r.Context())

		client, err := repo.FindByID(r.Context(), clientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, clients.FromModel(client))
	}
}

// ClientProfileUpdate applies partial updates to the delivery profile.
func ClientProfileUpdate(repo *clients.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := middleware.ActorIDFromContext(r.Context())

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updates := map[string]any{}
		if body.Name != nil {
			updates["name"] = strings.TrimSpace(*body.Name)
		}
		if body.Phone != nil {
			updates["phone"] = strings.TrimSpace(*body.Phone)
		}
		if body.LocationType != nil {
			loc, err := enums.ParseDeliveryLocation(*body.LocationType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
				return
			}
			updates["location_type"] = loc
		}
		if body.Etage != nil {
			updates["etage"] = strings.TrimSpace(*body.Etage)
		}
		if body.Address != nil {
			updates["address"] = strings.TrimSpace(*body.Address)
		}

		if len(updates) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update"))
			return
		}

		if err := repo.UpdateProfile(r.Context(), clientID, updates); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile"))
			return
		}

		client, err := repo.FindByID(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload profile"))
			return
		}
		responses.WriteSuccess(w, clients.FromModel(client))
	}
}
