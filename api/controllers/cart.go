package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/api/validators"
	"github.com/unideals/unideals-backend/internal/cart"
	"github.com/unideals/unideals-backend/pkg/logger"
)

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type updateItemRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// PanierFetch returns the client's active cart.
func PanierFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := middleware.ActorIDFromContext(r.Context())

		panier, err := svc.Get(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart.FromModel(panier))
	}
}

// PanierAddItem adds a product to the cart; re-adds merge quantities.
func PanierAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := middleware.ActorIDFromContext(r.Context())

		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		panier, err := svc.AddItem(r.Context(), clientID, body.ProductID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart.FromModel(panier))
	}
}

// PanierUpdateItem changes the quantity of an existing line.
func PanierUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := middleware.ActorIDFromContext(r.Context())

		var body updateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		panier, err := svc.UpdateItemQuantity(r.Context(), clientID, body.ItemID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart.FromModel(panier))
	}
}

// PanierRemoveItem drops one line from the cart.
func PanierRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := middleware.ActorIDFromContext(r.Context())

		itemID, err := validators.UUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		panier, err := svc.RemoveItem(r.Context(), clientID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart.FromModel(panier))
	}
}
