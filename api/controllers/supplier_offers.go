package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/api/validators"
	"github.com/unideals/unideals-backend/internal/offers"
	"github.com/unideals/unideals-backend/pkg/logger"
)

type createOfferRequest struct {
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	Description        *string         `json:"description" validate:"omitempty,max=2000"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" validate:"required"`
	StartDate          time.Time       `json:"start_date" validate:"required"`
	EndDate            time.Time       `json:"end_date" validate:"required"`
	ProductIDs         []uuid.UUID     `json:"product_ids" validate:"required,min=1"`
}

type updateOfferRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description        *string          `json:"description" validate:"omitempty,max=2000"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	StartDate          *time.Time       `json:"start_date"`
	EndDate            *time.Time       `json:"end_date"`
	Active             *bool            `json:"active"`
	ProductIDs         *[]uuid.UUID     `json:"product_ids" validate:"omitempty,min=1"`
}

// SupplierOfferList lists the authenticated supplier's promotions.
func SupplierOfferList(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		items, err := svc.ListForSupplier(r.Context(), supplierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"offers": offers.FromModels(items)})
	}
}

// SupplierOfferCreate creates a promotion over owned products.
func SupplierOfferCreate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		var body createOfferRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Create(r.Context(), supplierID, offers.CreateOfferInput{
			Name:               body.Name,
			Description:        body.Description,
			DiscountPercentage: body.DiscountPercentage,
			StartDate:          body.StartDate,
			EndDate:            body.EndDate,
			ProductIDs:         body.ProductIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "", offers.FromModel(offer))
	}
}

// SupplierOfferUpdate applies partial updates to an owned promotion.
func SupplierOfferUpdate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		offerID, err := validators.UUIDParam(r, "offerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOfferRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Update(r.Context(), supplierID, offerID, offers.UpdateOfferInput{
			Name:               body.Name,
			Description:        body.Description,
			DiscountPercentage: body.DiscountPercentage,
			StartDate:          body.StartDate,
			EndDate:            body.EndDate,
			Active:             body.Active,
			ProductIDs:         body.ProductIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, offers.FromModel(offer))
	}
}

// SupplierOfferDelete removes an owned promotion.
func SupplierOfferDelete(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID := middleware.ActorIDFromContext(r.Context())

		offerID, err := validators.UUIDParam(r, "offerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), supplierID, offerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, "offer deleted", nil)
	}
}
