package controllers

import (
	"net/http"

	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/api/responses"
	"github.com/unideals/unideals-backend/api/validators"
	"github.com/unideals/unideals-backend/internal/checkout"
	"github.com/unideals/unideals-backend/internal/orders"
	"github.com/unideals/unideals-backend/pkg/logger"
)

type confirmRequest struct {
	Phone        string  `json:"phone" validate:"required,min=6,max=30"`
	LocationType string  `json:"location_type" validate:"required,oneof=emsi outside"`
	Etage        *string `json:"etage" validate:"omitempty,max=20"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
	ClientName   *string `json:"client_name" validate:"omitempty,max=120"`
}

type confirmResponse struct {
	Order *orders.OrderDTO          `json:"order"`
	Items []orders.OrderLineItemDTO `json:"items"`
}

// PanierConfirm turns the active cart into an immutable order.
func PanierConfirm(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := middleware.ActorIDFromContext(r.Context())

		var body confirmRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Confirm(r.Context(), clientID, checkout.DeliveryInput{
			Phone:        body.Phone,
			LocationType: body.LocationType,
			Etage:        body.Etage,
			Address:      body.Address,
			DisplayName:  body.ClientName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto := orders.FromModel(order)
		items := dto.Items
		dto.Items = nil
		responses.WriteSuccessMessage(w, "order confirmed", confirmResponse{Order: dto, Items: items})
	}
}
